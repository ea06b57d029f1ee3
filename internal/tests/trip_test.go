package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
	"github.com/Rakib1514/tickto-server/internal/service"
)

// ──────────────────────────────────────────────
// 4. TRIP MANAGEMENT
// ──────────────────────────────────────────────

func TestCreateTrip_ClassifiesInitialStatus(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	svc := service.NewTripService(tripRepo)
	now := time.Now().UTC()

	trip, err := svc.CreateTrip(context.Background(), service.CreateTripRequest{
		OrganizerID:   "org-1",
		BusID:         "bus-1",
		Origin:        "Dhaka",
		Destination:   "Sylhet",
		DepartureTime: now.Add(time.Hour),
		ArrivalTime:   now.Add(7 * time.Hour),
		Price:         850,
		SeatCount:     40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.Status != domain.TripStatusUpcoming {
		t.Errorf("expected a future trip to be created upcoming, got %s", trip.Status)
	}
	if tripRepo.CountTrips() != 1 {
		t.Error("expected the trip to be persisted")
	}
}

func TestCreateTrip_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewTripService(NewMockTripRepository())
	now := time.Now().UTC()

	cases := []struct {
		name string
		req  service.CreateTripRequest
		want error
	}{
		{
			"missing organizer",
			service.CreateTripRequest{BusID: "b", DepartureTime: now, ArrivalTime: now.Add(time.Hour)},
			service.ErrInvalidOrganizerID,
		},
		{
			"missing bus",
			service.CreateTripRequest{OrganizerID: "o", DepartureTime: now, ArrivalTime: now.Add(time.Hour)},
			service.ErrInvalidBusID,
		},
		{
			"inverted window",
			service.CreateTripRequest{OrganizerID: "o", BusID: "b", DepartureTime: now.Add(time.Hour), ArrivalTime: now},
			service.ErrInvalidTimeWindow,
		},
	}

	for _, tc := range cases {
		if _, err := svc.CreateTrip(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestUpdateTrip_IgnoresStatusAndUnknownFields(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	tripRepo := NewMockTripRepository()
	tripRepo.AddTrip(&domain.Trip{
		ID:            "t1",
		DepartureTime: now.Add(time.Hour),
		ArrivalTime:   now.Add(2 * time.Hour),
		Price:         500,
		Status:        domain.TripStatusUpcoming,
	})

	svc := service.NewTripService(tripRepo)
	trip, err := svc.UpdateTrip(context.Background(), "t1", map[string]any{
		"price":  float64(650),
		"status": "completed",
		"bogus":  "value",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.Price != 650 {
		t.Errorf("expected price 650, got %v", trip.Price)
	}
	if trip.Status != domain.TripStatusUpcoming {
		t.Errorf("expected status to be untouchable from updates, got %s", trip.Status)
	}
}

func TestUpdateTrip_UnknownTrip(t *testing.T) {
	t.Parallel()

	svc := service.NewTripService(NewMockTripRepository())
	_, err := svc.UpdateTrip(context.Background(), "missing", map[string]any{"price": float64(100)})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTrips_FilteredByOrganizer(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	tripRepo := NewMockTripRepository()
	tripRepo.AddTrip(&domain.Trip{ID: "a", OrganizerID: "org-1", DepartureTime: now, ArrivalTime: now.Add(time.Hour)})
	tripRepo.AddTrip(&domain.Trip{ID: "b", OrganizerID: "org-2", DepartureTime: now, ArrivalTime: now.Add(time.Hour)})

	svc := service.NewTripService(tripRepo)
	trips, err := svc.ListTrips(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != "a" {
		t.Errorf("expected only org-1's trip, got %d trips", len(trips))
	}
}
