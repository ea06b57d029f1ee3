package tests

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/service"
)

// ──────────────────────────────────────────────
// 3. LOCATION AUTOCOMPLETE
// ──────────────────────────────────────────────

func seedLocationFixtures(t *testing.T) *MockTripRepository {
	t.Helper()

	tripRepo := NewMockTripRepository()
	departure := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)
	routes := []struct{ origin, destination string }{
		{"Dhaka", "Sylhet"},
		{"Hatiya", "Dhaka"},
		{"Habiganj", "Chattogram"},
		{"Dhaka", "Sylhet"}, // duplicate route, same origin value
		{"Sylhet", "Hatiya"},
	}
	for _, r := range routes {
		tripRepo.AddTrip(&domain.Trip{
			Origin:        domain.Location(r.origin),
			Destination:   domain.Location(r.destination),
			DepartureTime: departure,
			ArrivalTime:   departure.Add(6 * time.Hour),
		})
	}
	return tripRepo
}

func TestSuggest_PrefixMatchDedupedCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := service.NewLocationService(seedLocationFixtures(t), nil)

	values, err := svc.Suggest(context.Background(), service.SuggestParams{From: "HA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, []string{"Habiganj", "Hatiya"}) {
		t.Errorf("expected [Habiganj Hatiya], got %v", values)
	}

	values, err = svc.Suggest(context.Background(), service.SuggestParams{From: "dh"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, []string{"Dhaka"}) {
		t.Errorf("expected a single deduplicated Dhaka, got %v", values)
	}
}

func TestSuggest_SearchesTheRequestedDirection(t *testing.T) {
	t.Parallel()

	svc := service.NewLocationService(seedLocationFixtures(t), nil)

	values, err := svc.Suggest(context.Background(), service.SuggestParams{To: "sy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, []string{"Sylhet"}) {
		t.Errorf("expected destinations only, got %v", values)
	}
}

func TestSuggest_ValidationRules(t *testing.T) {
	t.Parallel()

	svc := service.NewLocationService(seedLocationFixtures(t), nil)

	cases := []struct {
		name   string
		params service.SuggestParams
		want   error
	}{
		{"neither direction", service.SuggestParams{}, service.ErrDirectionRequired},
		{"both directions", service.SuggestParams{From: "dh", To: "sy"}, service.ErrBothDirections},
		{"single character", service.SuggestParams{From: "h"}, service.ErrSearchTooShort},
		{"whitespace only", service.SuggestParams{From: "   "}, service.ErrDirectionRequired},
		{"specials collapse below minimum", service.SuggestParams{From: "h$!"}, service.ErrSearchTooShort},
	}

	for _, tc := range cases {
		_, err := svc.Suggest(context.Background(), tc.params)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestSuggest_StripsPatternSpecialCharacters(t *testing.T) {
	t.Parallel()

	svc := service.NewLocationService(seedLocationFixtures(t), nil)

	// ".*" would match every location if it survived sanitization.
	values, err := svc.Suggest(context.Background(), service.SuggestParams{From: "ha.*"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, []string{"Habiganj", "Hatiya"}) {
		t.Errorf("expected specials to be stripped before matching, got %v", values)
	}
}

func TestSuggest_CapsAtTenDistinctValues(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	departure := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)
	names := []string{
		"Mira Alpha", "Mira Bravo", "Mira Charlie", "Mira Delta",
		"Mira Echo", "Mira Foxtrot", "Mira Golf", "Mira Hotel",
		"Mira India", "Mira Juliet", "Mira Kilo", "Mira Lima",
	}
	for _, name := range names {
		tripRepo.AddTrip(&domain.Trip{
			Origin:        domain.Location(name),
			Destination:   "Dhaka",
			DepartureTime: departure,
			ArrivalTime:   departure.Add(time.Hour),
		})
	}

	svc := service.NewLocationService(tripRepo, nil)
	values, err := svc.Suggest(context.Background(), service.SuggestParams{From: "mira"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 10 {
		t.Errorf("expected the suggestion list capped at 10, got %d", len(values))
	}
}

func TestSuggest_CacheHitSkipsTheStore(t *testing.T) {
	t.Parallel()

	tripRepo := seedLocationFixtures(t)
	cache := NewMockCacheStore()
	svc := service.NewLocationService(tripRepo, cache)

	first, err := svc.Suggest(context.Background(), service.SuggestParams{From: "Ha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.SetCallCount != 1 {
		t.Fatalf("expected one cache write, got %d", cache.SetCallCount)
	}

	tripRepo.SuggestError = errors.New("store must not be consulted")
	second, err := svc.Suggest(context.Background(), service.SuggestParams{From: "hA"})
	if err != nil {
		t.Fatalf("expected the cached answer, got %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cache returned %v, store returned %v", second, first)
	}
	if cache.GetCallCount != 2 {
		t.Errorf("expected two cache reads, got %d", cache.GetCallCount)
	}
}
