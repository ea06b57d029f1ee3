package domain

import "time"

// Event represents a ticketed event listing. Plain persistence, no
// derived state; the query engine never reasons about events.
type Event struct {
	ID          string
	OrganizerID string
	Title       string
	Venue       string
	StartsAt    time.Time
	Price       float64
	CreatedAt   time.Time
}
