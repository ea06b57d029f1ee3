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
// 2. AVAILABILITY SEARCH
// ──────────────────────────────────────────────

// Trips are seeded well in the future so the reconciliation pass that
// precedes every search leaves them upcoming.
func seedAvailabilityFixtures(t *testing.T) *MockTripRepository {
	t.Helper()

	tripRepo := NewMockTripRepository()
	tripRepo.AddBus(&domain.Bus{ID: "bus-1", Name: "Green Line", PlateNumber: "DHK-1122", SeatCount: 40})
	tripRepo.AddBus(&domain.Bus{ID: "bus-2", Name: "Hanif", PlateNumber: "CTG-3344", SeatCount: 36})

	tripRepo.AddTrip(&domain.Trip{
		ID:            "late",
		BusID:         "bus-1",
		Origin:        "Dhaka",
		Destination:   "Chattogram",
		DepartureTime: time.Date(2030, 5, 2, 10, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2030, 5, 2, 16, 0, 0, 0, time.UTC),
		Status:        domain.TripStatusUpcoming,
	})
	tripRepo.AddTrip(&domain.Trip{
		ID:            "early",
		BusID:         "bus-2",
		Origin:        "Dhaka",
		Destination:   "Sylhet",
		DepartureTime: time.Date(2030, 5, 1, 23, 30, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2030, 5, 2, 5, 30, 0, 0, time.UTC),
		Status:        domain.TripStatusUpcoming,
	})
	tripRepo.AddTrip(&domain.Trip{
		ID:            "other-origin",
		BusID:         "bus-1",
		Origin:        "Khulna",
		Destination:   "Dhaka",
		DepartureTime: time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2030, 5, 1, 14, 0, 0, 0, time.UTC),
		Status:        domain.TripStatusUpcoming,
	})
	return tripRepo
}

func newAvailabilityService(tripRepo *MockTripRepository) *service.AvailabilityService {
	reconciler := service.NewReconciler(tripRepo, nil, time.Minute)
	return service.NewAvailabilityService(tripRepo, reconciler)
}

func tripIDs(trips []*domain.TripWithBus) []string {
	ids := make([]string, 0, len(trips))
	for _, trip := range trips {
		ids = append(ids, trip.ID)
	}
	return ids
}

func TestSearch_NoFiltersReturnsOnlyUpcoming(t *testing.T) {
	t.Parallel()

	tripRepo := seedAvailabilityFixtures(t)
	now := time.Now().UTC()
	tripRepo.AddTrip(&domain.Trip{
		ID:            "finished",
		BusID:         "bus-1",
		Origin:        "Dhaka",
		Destination:   "Barishal",
		DepartureTime: now.Add(-3 * time.Hour),
		ArrivalTime:   now.Add(-time.Hour),
		Status:        domain.TripStatusUpcoming, // stale until reconciled
	})

	svc := newAvailabilityService(tripRepo)
	result, err := svc.Search(context.Background(), service.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, trip := range result.Trips {
		if trip.ID == "finished" {
			t.Error("expected the completed trip to be excluded after reconciliation")
		}
	}
	if len(result.Trips) != 3 {
		t.Errorf("expected the 3 upcoming trips, got %v", tripIDs(result.Trips))
	}
}

func TestSearch_LocationMatchIsCaseAndTrimInsensitive(t *testing.T) {
	t.Parallel()

	tripRepo := seedAvailabilityFixtures(t)
	svc := newAvailabilityService(tripRepo)

	result, err := svc.Search(context.Background(), service.SearchParams{Origin: "  dhaka "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Trips) != 2 {
		t.Fatalf("expected 2 trips from Dhaka, got %v", tripIDs(result.Trips))
	}
	for _, trip := range result.Trips {
		if trip.Origin != "Dhaka" {
			t.Errorf("unexpected origin %q", trip.Origin)
		}
	}
}

func TestSearch_DepartureDateUsesUTCCalendarDay(t *testing.T) {
	t.Parallel()

	tripRepo := seedAvailabilityFixtures(t)
	svc := newAvailabilityService(tripRepo)

	// A 23:30Z departure belongs to May 1st, however close to midnight.
	result, err := svc.Search(context.Background(), service.SearchParams{Departure: "2030-05-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := tripIDs(result.Trips)
	if len(ids) != 2 || ids[0] != "other-origin" || ids[1] != "early" {
		t.Fatalf("expected [other-origin early], got %v", ids)
	}

	result, err = svc.Search(context.Background(), service.SearchParams{Departure: "2030-05-02"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := tripIDs(result.Trips); len(ids) != 1 || ids[0] != "late" {
		t.Fatalf("expected [late], got %v", ids)
	}
}

func TestSearch_DepartureDateAcceptsTimestamp(t *testing.T) {
	t.Parallel()

	tripRepo := seedAvailabilityFixtures(t)
	svc := newAvailabilityService(tripRepo)

	// Time-of-day on the parameter is discarded; only the date filters.
	result, err := svc.Search(context.Background(), service.SearchParams{Departure: "2030-05-02T03:00:00Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := tripIDs(result.Trips); len(ids) != 1 || ids[0] != "late" {
		t.Fatalf("expected [late], got %v", ids)
	}
}

func TestSearch_InvalidDepartureDate(t *testing.T) {
	t.Parallel()

	svc := newAvailabilityService(seedAvailabilityFixtures(t))
	_, err := svc.Search(context.Background(), service.SearchParams{Departure: "next tuesday"})
	if !errors.Is(err, service.ErrInvalidDepartureDate) {
		t.Fatalf("expected ErrInvalidDepartureDate, got %v", err)
	}
}

func TestSearch_SortedByDepartureAscending(t *testing.T) {
	t.Parallel()

	svc := newAvailabilityService(seedAvailabilityFixtures(t))
	result, err := svc.Search(context.Background(), service.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(result.Trips); i++ {
		if result.Trips[i].DepartureTime.Before(result.Trips[i-1].DepartureTime) {
			t.Fatalf("trips out of order: %v", tripIDs(result.Trips))
		}
	}
}

func TestSearch_DropsTripsWithUnresolvableBus(t *testing.T) {
	t.Parallel()

	tripRepo := seedAvailabilityFixtures(t)
	tripRepo.AddTrip(&domain.Trip{
		ID:            "orphan",
		BusID:         "bus-gone",
		Origin:        "Dhaka",
		Destination:   "Rangpur",
		DepartureTime: time.Date(2030, 5, 3, 9, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2030, 5, 3, 15, 0, 0, 0, time.UTC),
	})

	svc := newAvailabilityService(tripRepo)
	result, err := svc.Search(context.Background(), service.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, trip := range result.Trips {
		if trip.ID == "orphan" {
			t.Error("expected the trip with a dangling bus reference to be dropped")
		}
	}
}

func TestSearch_StaleResultWhenReconciliationFailsEntirely(t *testing.T) {
	t.Parallel()

	tripRepo := seedAvailabilityFixtures(t)
	tripRepo.UpdateManyErrFunc = func(repository.TripFilter, repository.TripUpdate) error {
		return repository.ErrStoreUnavailable
	}

	svc := newAvailabilityService(tripRepo)
	result, err := svc.Search(context.Background(), service.SearchParams{})
	if err != nil {
		t.Fatalf("expected the search to degrade, got %v", err)
	}
	if !result.Stale {
		t.Error("expected the result to be flagged stale")
	}
	if len(result.Trips) == 0 {
		t.Error("expected the last persisted statuses to still be served")
	}
}
