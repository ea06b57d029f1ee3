package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// SearchParams are the raw availability query parameters as they arrive
// from the caller. All fields are optional.
type SearchParams struct {
	Origin      string
	Destination string
	// Departure is a calendar date, possibly delivered with a
	// time-of-day component; only its UTC date portion is used.
	Departure string
}

// SearchResult is the outcome of an availability search.
type SearchResult struct {
	Trips []*domain.TripWithBus

	// Stale is true when reconciliation could not run at all, so the
	// result reflects whatever status values were last persisted.
	Stale bool
}

// Layouts accepted for the departure date parameter.
var departureLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// AvailabilityService answers "find all upcoming trips matching
// origin/destination/date". It holds no state of its own; it is a
// stateless planner over the trip repository, preceded by a
// staleness-bounded reconciliation pass.
type AvailabilityService struct {
	tripRepo   repository.TripRepository
	reconciler *Reconciler
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(tripRepo repository.TripRepository, reconciler *Reconciler) *AvailabilityService {
	return &AvailabilityService{tripRepo: tripRepo, reconciler: reconciler}
}

// Search reconciles trip statuses, then returns upcoming trips matching
// the parameters, joined to their bus and sorted by departure ascending.
// Trips whose bus reference cannot be resolved are dropped row by row,
// never failing the request.
func (s *AvailabilityService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	query, err := buildAvailabilityQuery(params)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{}
	if _, err := s.reconciler.MaybeReconcile(ctx); err != nil {
		if !errors.Is(err, ErrReconcileFailed) {
			return nil, err
		}
		// The read can still make progress on the last persisted
		// statuses, but the caller must know it is not authoritative.
		result.Stale = true
	}

	trips, err := s.tripRepo.FindAvailable(ctx, query)
	if err != nil {
		return nil, err
	}
	result.Trips = trips
	return result, nil
}

// buildAvailabilityQuery validates and normalizes the raw parameters:
// locations are trimmed (matching is case-insensitive downstream), the
// departure date is truncated to its UTC calendar date.
func buildAvailabilityQuery(params SearchParams) (repository.AvailabilityQuery, error) {
	query := repository.AvailabilityQuery{
		Origin:      strings.TrimSpace(params.Origin),
		Destination: strings.TrimSpace(params.Destination),
	}

	if raw := strings.TrimSpace(params.Departure); raw != "" {
		parsed, err := parseDeparture(raw)
		if err != nil {
			return repository.AvailabilityQuery{}, err
		}
		day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		query.DepartureDate = &day
	}

	return query, nil
}

func parseDeparture(raw string) (time.Time, error) {
	for _, layout := range departureLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDepartureDate
}
