package service

import (
	"context"
	"time"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// TripService handles operator-facing trip operations.
type TripService struct {
	tripRepo repository.TripRepository
	now      func() time.Time
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo repository.TripRepository) *TripService {
	return &TripService{tripRepo: tripRepo, now: time.Now}
}

// CreateTripRequest contains the parameters for posting a trip.
type CreateTripRequest struct {
	OrganizerID   string
	BusID         string
	Origin        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         float64
	SeatCount     int
}

// CreateTrip validates and persists a new trip. The initial status is the
// classification of the window at creation time; the reconciler keeps it
// consistent afterwards.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.OrganizerID == "" {
		return nil, ErrInvalidOrganizerID
	}
	if req.BusID == "" {
		return nil, ErrInvalidBusID
	}
	if !req.DepartureTime.Before(req.ArrivalTime) {
		return nil, ErrInvalidTimeWindow
	}

	now := s.now().UTC()
	trip := &domain.Trip{
		OrganizerID:   req.OrganizerID,
		BusID:         req.BusID,
		Origin:        domain.Location(req.Origin),
		Destination:   domain.Location(req.Destination),
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		SeatCount:     req.SeatCount,
		Status:        domain.ClassifyTrip(req.DepartureTime, req.ArrivalTime, now),
		CreatedAt:     now,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if id == "" {
		return nil, ErrInvalidTripID
	}
	return s.tripRepo.GetByID(ctx, id)
}

// ListTrips retrieves trips, optionally restricted to one organizer.
func (s *TripService) ListTrips(ctx context.Context, organizerID string) ([]*domain.Trip, error) {
	return s.tripRepo.FindMany(ctx, repository.TripFilter{OrganizerID: organizerID})
}

// Updatable trip fields and their store names. Status is deliberately
// absent: only the reconciler writes it.
var updatableTripFields = map[string]string{
	"origin":        "origin",
	"destination":   "destination",
	"departureTime": "departureTime",
	"arrivalTime":   "arrivalTime",
	"price":         "price",
	"seatCount":     "seatCount",
	"busId":         "busId",
}

// UpdateTrip applies an operator-initiated partial update of arbitrary
// fields. Unknown fields are ignored; an update racing the reconciler is
// last-write-wins per field, and a transiently stale status is corrected
// by the next reconciliation pass.
func (s *TripService) UpdateTrip(ctx context.Context, id string, fields map[string]any) (*domain.Trip, error) {
	if id == "" {
		return nil, ErrInvalidTripID
	}

	set := make(map[string]any, len(fields))
	for name, value := range fields {
		if stored, ok := updatableTripFields[name]; ok {
			set[stored] = value
		}
	}
	if len(set) > 0 {
		if err := s.tripRepo.UpdateFields(ctx, id, set); err != nil {
			return nil, err
		}
	}
	return s.tripRepo.GetByID(ctx, id)
}
