package domain

import (
	"strings"
	"time"
)

// TripStatus is the lifecycle status of a trip. It is a pure function of
// the trip's time window and the current time; the persisted value is a
// cache refreshed by the status reconciler, never the source of truth.
type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "upcoming"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
)

// Location is a free-text origin or destination string. Values are stored
// exactly as operators typed them, so matching happens case-insensitively
// and trim-tolerantly at read time.
type Location string

// Normalized returns the location with surrounding whitespace removed.
func (l Location) Normalized() string {
	return strings.TrimSpace(string(l))
}

// TimeWindow is a trip's departure/arrival pair. Departure is expected to
// precede arrival, but the store does not enforce it.
type TimeWindow struct {
	Departure time.Time
	Arrival   time.Time
}

// WellFormed reports whether the window satisfies departure <= arrival.
func (w TimeWindow) WellFormed() bool {
	return !w.Departure.After(w.Arrival)
}

// Classify computes the lifecycle status of the window at the given
// instant. Corrupted windows (arrival before departure) classify as
// completed so they can never surface as bookable.
func (w TimeWindow) Classify(now time.Time) TripStatus {
	if !w.WellFormed() {
		return TripStatusCompleted
	}
	switch {
	case w.Arrival.Before(now):
		return TripStatusCompleted
	case w.Departure.After(now):
		return TripStatusUpcoming
	default:
		return TripStatusActive
	}
}

// ClassifyTrip is the pure status function over a departure/arrival pair.
func ClassifyTrip(departure, arrival, now time.Time) TripStatus {
	return TimeWindow{Departure: departure, Arrival: arrival}.Classify(now)
}

// Trip represents a scheduled bus trip posted by an operator.
type Trip struct {
	ID            string
	OrganizerID   string
	BusID         string // external reference, coerced to a store ref at the repository boundary
	Origin        Location
	Destination   Location
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         float64
	SeatCount     int
	Status        TripStatus
	CreatedAt     time.Time
}

// Window returns the trip's departure/arrival window.
func (t *Trip) Window() TimeWindow {
	return TimeWindow{Departure: t.DepartureTime, Arrival: t.ArrivalTime}
}

// TripWithBus is a trip joined to its resolved bus record. Trips whose
// bus reference cannot be resolved produce no TripWithBus at all.
type TripWithBus struct {
	Trip
	Bus Bus
}
