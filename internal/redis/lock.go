package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

const reconcileLockKey = "lock:trip-reconcile"

// AcquireReconcileLock attempts to acquire the cluster-wide reconciliation
// lock. Returns true if the lock was acquired, false if another instance
// holds it.
func (s *LockStore) AcquireReconcileLock(ctx context.Context, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, reconcileLockKey, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseReconcileLock releases the reconciliation lock.
func (s *LockStore) ReleaseReconcileLock(ctx context.Context) error {
	return s.client.Del(ctx, reconcileLockKey).Err()
}
