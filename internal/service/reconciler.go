package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/redis"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

const (
	// reconcileCallTimeout bounds each bulk update against the store.
	reconcileCallTimeout = 5 * time.Second

	// reconcileLockTTL covers one full pass with headroom; the lock
	// expires on its own if the holder dies mid-pass.
	reconcileLockTTL = 30 * time.Second
)

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	Active    int64
	Completed int64
	Upcoming  int64
	Corrupted int64

	// Warnings holds the errors of individual passes that failed while
	// the others proceeded.
	Warnings []error

	// Skipped is true when the pass did not run because the previous run
	// is within the staleness bound or another instance holds the lock.
	Skipped bool
}

// Partial reports whether some but not all passes failed.
func (r *ReconcileReport) Partial() bool {
	return len(r.Warnings) > 0 && len(r.Warnings) < 4
}

// Failed reports whether every pass failed, meaning no status was
// refreshed at all.
func (r *ReconcileReport) Failed() bool {
	return len(r.Warnings) == 4
}

// Reconciler makes every trip's persisted status consistent with the
// current time. Status is a cache of domain.ClassifyTrip over the trip's
// window; each pass overwrites one status bucket with an independent bulk
// update so the passes can never disagree on a row.
type Reconciler struct {
	tripRepo repository.TripRepository
	locks    redis.LockStoreInterface

	// interval is the staleness bound: MaybeReconcile is a no-op while
	// the previous successful run is younger than this.
	interval time.Duration

	now func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

// NewReconciler creates a new Reconciler. locks may be nil, in which case
// concurrent passes are only serialized within this process.
func NewReconciler(tripRepo repository.TripRepository, locks redis.LockStoreInterface, interval time.Duration) *Reconciler {
	return &Reconciler{
		tripRepo: tripRepo,
		locks:    locks,
		interval: interval,
		now:      time.Now,
	}
}

// Reconcile runs all four status passes unconditionally. Each pass is
// independent: a failing pass is recorded as a warning and the remaining
// passes still run. Only when every pass fails is ErrReconcileFailed
// returned, since then the subsequent read would work off entirely
// unrefreshed status values.
func (s *Reconciler) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	now := s.now().UTC()
	wellFormed := true
	corrupted := false
	report := &ReconcileReport{}

	passes := []struct {
		name   string
		filter repository.TripFilter
		status domain.TripStatus
		count  *int64
	}{
		{
			name: "active",
			filter: repository.TripFilter{
				WellFormed:          &wellFormed,
				DepartureAtOrBefore: &now,
				ArrivalAtOrAfter:    &now,
			},
			status: domain.TripStatusActive,
			count:  &report.Active,
		},
		{
			name: "completed",
			filter: repository.TripFilter{
				WellFormed:    &wellFormed,
				ArrivalBefore: &now,
			},
			status: domain.TripStatusCompleted,
			count:  &report.Completed,
		},
		{
			name: "upcoming",
			filter: repository.TripFilter{
				WellFormed:     &wellFormed,
				DepartureAfter: &now,
			},
			status: domain.TripStatusUpcoming,
			count:  &report.Upcoming,
		},
		{
			// Corrupted windows (arrival before departure) classify as
			// completed, matching domain.ClassifyTrip, so rule ordering
			// can never change their outcome.
			name: "corrupted",
			filter: repository.TripFilter{
				WellFormed: &corrupted,
			},
			status: domain.TripStatusCompleted,
			count:  &report.Corrupted,
		},
	}

	for _, pass := range passes {
		callCtx, cancel := context.WithTimeout(ctx, reconcileCallTimeout)
		n, err := s.tripRepo.UpdateMany(callCtx, pass.filter, repository.TripUpdate{Status: pass.status})
		cancel()
		if err != nil {
			log.Printf("reconciler: %s pass failed: %v", pass.name, err)
			report.Warnings = append(report.Warnings, err)
			continue
		}
		*pass.count = n
	}

	if report.Failed() {
		return report, ErrReconcileFailed
	}

	s.mu.Lock()
	s.lastRun = s.now()
	s.mu.Unlock()

	return report, nil
}

// MaybeReconcile runs a pass unless the previous successful run is still
// within the staleness bound, or another instance is reconciling right
// now. Callers on the read path use this so a read tolerates a
// bounded-stale status instead of forcing writes on every request.
func (s *Reconciler) MaybeReconcile(ctx context.Context) (*ReconcileReport, error) {
	s.mu.Lock()
	fresh := !s.lastRun.IsZero() && s.now().Sub(s.lastRun) < s.interval
	s.mu.Unlock()
	if fresh {
		return &ReconcileReport{Skipped: true}, nil
	}

	if s.locks != nil {
		acquired, err := s.locks.AcquireReconcileLock(ctx, reconcileLockTTL)
		if err != nil {
			// Lock store trouble is not a reason to skip reconciliation;
			// the passes themselves are idempotent.
			log.Printf("reconciler: lock unavailable, proceeding unlocked: %v", err)
		} else if !acquired {
			// Another instance is on it; its pass covers this read.
			return &ReconcileReport{Skipped: true}, nil
		} else {
			defer func() {
				if err := s.locks.ReleaseReconcileLock(context.WithoutCancel(ctx)); err != nil {
					log.Printf("reconciler: releasing lock: %v", err)
				}
			}()
		}
	}

	return s.Reconcile(ctx)
}

// Run drives periodic reconciliation until the context is cancelled.
// Intended to be started once from main in its own goroutine.
func (s *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.MaybeReconcile(ctx); err != nil {
				log.Printf("reconciler: scheduled pass: %v", err)
			}
		}
	}
}
