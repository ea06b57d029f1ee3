package repository

import (
	"context"
	"time"

	"github.com/Rakib1514/tickto-server/internal/domain"
)

// LocationField selects which free-text location field a query targets.
type LocationField string

const (
	LocationFieldOrigin      LocationField = "origin"
	LocationFieldDestination LocationField = "destination"
)

// TripFilter is a structured filter over trips. Zero-valued fields are
// ignored. Time predicates compare against the coerced departure/arrival
// values, so they behave correctly even when the store holds string-typed
// timestamps.
type TripFilter struct {
	Status              domain.TripStatus
	OrganizerID         string
	DepartureBefore     *time.Time // departureTime < t
	DepartureAfter      *time.Time // departureTime > t
	DepartureAtOrBefore *time.Time // departureTime <= t
	ArrivalBefore       *time.Time // arrivalTime < t
	ArrivalAtOrAfter    *time.Time // arrivalTime >= t
	// WellFormed constrains rows by the departure <= arrival invariant:
	// nil means no constraint, true keeps only well-formed rows, false
	// keeps only corrupted rows.
	WellFormed *bool
}

// TripUpdate is the set of fields a bulk update may overwrite.
type TripUpdate struct {
	Status domain.TripStatus
}

// AvailabilityQuery is the planner's input to the availability search.
// Origin and Destination are pre-trimmed literal values; DepartureDate,
// when set, is a UTC calendar date with a zero time-of-day.
type AvailabilityQuery struct {
	Origin        string
	Destination   string
	DepartureDate *time.Time
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// FindMany retrieves all trips matching the filter. No ordering is
	// guaranteed.
	FindMany(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)

	// UpdateMany overwrites the update fields on every matching trip and
	// returns the number of modified documents.
	UpdateMany(ctx context.Context, filter TripFilter, update TripUpdate) (int64, error)

	// UpdateFields applies a partial field-level overwrite to one trip.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error

	// FindAvailable executes the availability aggregation: upcoming trips
	// matching the query, inner-joined to their bus, sorted by departure
	// ascending. Trips whose bus reference does not resolve are dropped.
	FindAvailable(ctx context.Context, q AvailabilityQuery) ([]*domain.TripWithBus, error)

	// SuggestLocations returns up to limit distinct values of the target
	// field starting with prefix, case-insensitively. Ordering follows
	// the store's natural grouping order.
	SuggestLocations(ctx context.Context, field LocationField, prefix string, limit int) ([]string, error)
}
