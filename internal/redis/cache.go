package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles read-side caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	// SuggestionCacheTTL bounds how stale an autocomplete result may be.
	// New locations only appear when an operator posts a trip, so a short
	// TTL is plenty.
	SuggestionCacheTTL = 60 * time.Second
)

// Key prefixes
const (
	suggestionCachePrefix = "cache:suggest:"
)

// GetSuggestions retrieves a cached autocomplete result for the given
// direction and search text. Returns nil on a cache miss.
func (s *CacheStore) GetSuggestions(ctx context.Context, direction, text string) ([]string, error) {
	key := suggestionCachePrefix + direction + ":" + text
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// SetSuggestions stores an autocomplete result in cache.
func (s *CacheStore) SetSuggestions(ctx context.Context, direction, text string, values []string) error {
	key := suggestionCachePrefix + direction + ":" + text
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, SuggestionCacheTTL).Err()
}
