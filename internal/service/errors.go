package service

import "errors"

var (
	// ErrInvalidTripID is returned when a trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidBusID is returned when a bus ID is empty.
	ErrInvalidBusID = errors.New("invalid bus id")

	// ErrInvalidOrganizerID is returned when an organizer ID is empty.
	ErrInvalidOrganizerID = errors.New("invalid organizer id")

	// ErrInvalidTimeWindow is returned when a trip is posted with a
	// departure that does not precede its arrival.
	ErrInvalidTimeWindow = errors.New("departure time must precede arrival time")

	// ErrInvalidDepartureDate is returned when the departure date filter
	// cannot be parsed as a calendar date.
	ErrInvalidDepartureDate = errors.New("invalid departure date")

	// ErrDirectionRequired is returned when an autocomplete request names
	// neither the from nor the to direction.
	ErrDirectionRequired = errors.New("either from or to is required")

	// ErrBothDirections is returned when an autocomplete request names
	// both directions at once.
	ErrBothDirections = errors.New("only one of from or to may be given")

	// ErrSearchTooShort is returned when the sanitized autocomplete text
	// keeps fewer than two non-whitespace characters.
	ErrSearchTooShort = errors.New("search text must be at least 2 characters")

	// ErrInvalidPaymentAmount is returned when a payment amount is not
	// positive.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrReconcileFailed is returned when every reconciliation pass
	// failed and no status could be refreshed.
	ErrReconcileFailed = errors.New("status reconciliation failed")
)
