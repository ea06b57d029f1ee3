package domain

import "time"

// Bus represents an operator-owned vehicle. Beyond identity and ownership
// its attributes are opaque to the query engine; they are carried along
// for display when a trip is joined to its bus.
type Bus struct {
	ID          string
	OperatorID  string
	Name        string
	PlateNumber string
	SeatCount   int
	CreatedAt   time.Time
}
