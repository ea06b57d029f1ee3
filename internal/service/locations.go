package service

import (
	"context"
	"log"
	"regexp"
	"strings"
	"unicode"

	"github.com/Rakib1514/tickto-server/internal/redis"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// suggestionLimit caps the number of distinct locations returned.
const suggestionLimit = 10

// nonSearchRunes matches every character that is neither a word character
// nor whitespace. Stripping them neutralizes pattern-special input before
// the repository embeds the remaining text, escaped, in a prefix pattern.
var nonSearchRunes = regexp.MustCompile(`[^\w\s]+`)

// SuggestParams are the raw autocomplete parameters. Exactly one of From
// and To must be non-empty.
type SuggestParams struct {
	From string
	To   string
}

// LocationService serves incremental location autocomplete over trip
// origin and destination values.
type LocationService struct {
	tripRepo repository.TripRepository
	cache    redis.CacheStoreInterface
}

// NewLocationService creates a new LocationService. cache may be nil.
func NewLocationService(tripRepo repository.TripRepository, cache redis.CacheStoreInterface) *LocationService {
	return &LocationService{tripRepo: tripRepo, cache: cache}
}

// Suggest returns up to 10 distinct locations starting with the search
// text, case-insensitively. Validation happens before the store is
// touched.
func (s *LocationService) Suggest(ctx context.Context, params SuggestParams) ([]string, error) {
	field, text, err := validateSuggest(params)
	if err != nil {
		return nil, err
	}

	cacheKey := strings.ToLower(text)
	if s.cache != nil {
		cached, err := s.cache.GetSuggestions(ctx, string(field), cacheKey)
		if err != nil {
			log.Printf("locations: suggestion cache read: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	values, err := s.tripRepo.SuggestLocations(ctx, field, text, suggestionLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSuggestions(ctx, string(field), cacheKey, values); err != nil {
			log.Printf("locations: suggestion cache write: %v", err)
		}
	}
	return values, nil
}

// validateSuggest enforces the autocomplete contract: exactly one
// direction, and at least two non-whitespace characters left after
// sanitization. It returns the target field and the sanitized text.
func validateSuggest(params SuggestParams) (repository.LocationField, string, error) {
	from := strings.TrimSpace(params.From)
	to := strings.TrimSpace(params.To)

	switch {
	case from == "" && to == "":
		return "", "", ErrDirectionRequired
	case from != "" && to != "":
		return "", "", ErrBothDirections
	}

	field := repository.LocationFieldOrigin
	text := from
	if to != "" {
		field = repository.LocationFieldDestination
		text = to
	}

	sanitized := strings.TrimSpace(nonSearchRunes.ReplaceAllString(text, ""))
	if countNonSpace(sanitized) < 2 {
		return "", "", ErrSearchTooShort
	}
	return field, sanitized, nil
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
