package tests

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is an in-memory implementation of TripRepository
// that mirrors the store's query semantics closely enough to exercise
// the reconciler and the availability planner.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip
	buses map[string]*domain.Bus
	seq   int

	// Counters for verification
	UpdateManyCallCount    int32
	FindAvailableCallCount int32

	// Error injection
	CreateError        error
	FindAvailableError error
	SuggestError       error

	// UpdateManyErrFunc, when set, decides per call whether the bulk
	// update fails.
	UpdateManyErrFunc func(repository.TripFilter, repository.TripUpdate) error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
		buses: make(map[string]*domain.Bus),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if trip.ID == "" {
		m.seq++
		trip.ID = "trip-" + strconv.Itoa(m.seq)
	}
	m.trips[trip.ID] = trip
}

// AddBus registers a bus as a join target for FindAvailable.
func (m *MockTripRepository) AddBus(bus *domain.Bus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buses[bus.ID] = bus
}

// GetTrip returns the stored trip, or nil.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil
	}
	copy := *trip
	return &copy
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.AddTrip(trip)
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) FindMany(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Trip
	for _, trip := range m.trips {
		if tripMatchesFilter(trip, filter) {
			copy := *trip
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTripRepository) UpdateMany(ctx context.Context, filter repository.TripFilter, update repository.TripUpdate) (int64, error) {
	atomic.AddInt32(&m.UpdateManyCallCount, 1)
	if m.UpdateManyErrFunc != nil {
		if err := m.UpdateManyErrFunc(filter, update); err != nil {
			return 0, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var modified int64
	for _, trip := range m.trips {
		if !tripMatchesFilter(trip, filter) {
			continue
		}
		// Like the real store, a no-op overwrite does not count as a
		// modification.
		if update.Status != "" && trip.Status != update.Status {
			trip.Status = update.Status
			modified++
		}
	}
	return modified, nil
}

func (m *MockTripRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	for name, value := range fields {
		switch name {
		case "origin":
			trip.Origin = domain.Location(value.(string))
		case "destination":
			trip.Destination = domain.Location(value.(string))
		case "price":
			trip.Price = value.(float64)
		case "busId":
			trip.BusID = value.(string)
		}
	}
	return nil
}

func (m *MockTripRepository) FindAvailable(ctx context.Context, q repository.AvailabilityQuery) ([]*domain.TripWithBus, error) {
	atomic.AddInt32(&m.FindAvailableCallCount, 1)
	if m.FindAvailableError != nil {
		return nil, m.FindAvailableError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.TripWithBus
	for _, trip := range m.trips {
		if trip.Status != domain.TripStatusUpcoming {
			continue
		}
		if !locationMatches(trip.Origin, q.Origin) || !locationMatches(trip.Destination, q.Destination) {
			continue
		}
		if q.DepartureDate != nil &&
			trip.DepartureTime.UTC().Format("2006-01-02") != q.DepartureDate.UTC().Format("2006-01-02") {
			continue
		}
		bus, ok := m.buses[trip.BusID]
		if !ok {
			// Unresolvable bus reference drops the row.
			continue
		}
		result = append(result, &domain.TripWithBus{Trip: *trip, Bus: *bus})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DepartureTime.Before(result[j].DepartureTime)
	})
	return result, nil
}

func (m *MockTripRepository) SuggestLocations(ctx context.Context, field repository.LocationField, prefix string, limit int) ([]string, error) {
	if m.SuggestError != nil {
		return nil, m.SuggestError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var values []string
	for _, trip := range m.trips {
		value := string(trip.Origin)
		if field == repository.LocationFieldDestination {
			value = string(trip.Destination)
		}
		if !strings.HasPrefix(strings.ToLower(value), strings.ToLower(prefix)) {
			continue
		}
		if seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}

	sort.Strings(values)
	if len(values) > limit {
		values = values[:limit]
	}
	return values, nil
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

func tripMatchesFilter(t *domain.Trip, f repository.TripFilter) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.OrganizerID != "" && t.OrganizerID != f.OrganizerID {
		return false
	}
	if f.DepartureBefore != nil && !t.DepartureTime.Before(*f.DepartureBefore) {
		return false
	}
	if f.DepartureAfter != nil && !t.DepartureTime.After(*f.DepartureAfter) {
		return false
	}
	if f.DepartureAtOrBefore != nil && t.DepartureTime.After(*f.DepartureAtOrBefore) {
		return false
	}
	if f.ArrivalBefore != nil && !t.ArrivalTime.Before(*f.ArrivalBefore) {
		return false
	}
	if f.ArrivalAtOrAfter != nil && t.ArrivalTime.Before(*f.ArrivalAtOrAfter) {
		return false
	}
	if f.WellFormed != nil && t.Window().WellFormed() != *f.WellFormed {
		return false
	}
	return true
}

func locationMatches(stored domain.Location, query string) bool {
	if query == "" {
		return true
	}
	return strings.EqualFold(stored.Normalized(), strings.TrimSpace(query))
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu      sync.RWMutex
	intents map[string]*domain.PaymentIntent
	seq     int

	CreateError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{intents: make(map[string]*domain.PaymentIntent)}
}

func (m *MockPaymentRepository) Create(ctx context.Context, intent *domain.PaymentIntent) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	intent.ID = "intent-" + strconv.Itoa(m.seq)
	m.intents[intent.ID] = intent
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	intent, ok := m.intents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *intent
	return &copy, nil
}

// CountIntents returns the number of stored intents.
func (m *MockPaymentRepository) CountIntents() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.intents)
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu   sync.Mutex
	held bool

	AcquireError error
	// Blocked simulates the lock being held by another instance.
	Blocked bool

	AcquireCallCount int32
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{}
}

func (m *MockLockStore) AcquireReconcileLock(ctx context.Context, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Blocked || m.held {
		return false, nil
	}
	m.held = true
	return true, nil
}

func (m *MockLockStore) ReleaseReconcileLock(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = false
	return nil
}

// MockCacheStore is an in-memory implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu    sync.RWMutex
	items map[string][]string

	GetCallCount int32
	SetCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{items: make(map[string][]string)}
}

func (m *MockCacheStore) GetSuggestions(ctx context.Context, direction, text string) ([]string, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	values, ok := m.items[direction+":"+text]
	if !ok {
		return nil, nil
	}
	return values, nil
}

func (m *MockCacheStore) SetSuggestions(ctx context.Context, direction, text string, values []string) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[direction+":"+text] = values
	return nil
}
