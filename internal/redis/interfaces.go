package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireReconcileLock(ctx context.Context, ttl time.Duration) (bool, error)
	ReleaseReconcileLock(ctx context.Context) error
}

// CacheStoreInterface defines the interface for autocomplete caching.
type CacheStoreInterface interface {
	GetSuggestions(ctx context.Context, direction, text string) ([]string, error)
	SetSuggestions(ctx context.Context, direction, text string, values []string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)
