package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/charlesng35/restaurants/internal/cache"
)

// RateStore coordinates rate limiting counters for a specific key.
type RateStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int, ttl time.Duration, err error)
}

// memoryRateStore provides process-local rate limiting. It is concurrency-safe.
// Expired counters are swept during increments at most once per sweep interval.
type memoryRateStore struct {
	mu        sync.Mutex
	data      map[string]*memoryCounter
	clock     func() time.Time
	lastSweep time.Time
	interval  time.Duration
}

type memoryCounter struct {
	count     int
	windowEnd time.Time
}

// NewMemoryRateStore constructs an in-memory rate store.
func NewMemoryRateStore() RateStore {
	return newMemoryRateStore(time.Now)
}

func newMemoryRateStore(clock func() time.Time) *memoryRateStore {
	return &memoryRateStore{
		data:     make(map[string]*memoryCounter),
		clock:    clock,
		interval: time.Minute,
	}
}

func (s *memoryRateStore) Increment(_ context.Context, key string, window time.Duration) (int, time.Duration, error) {
	if window <= 0 {
		window = time.Minute
	}

	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= s.interval {
		for k, counter := range s.data {
			if now.After(counter.windowEnd) {
				delete(s.data, k)
			}
		}
		s.lastSweep = now
	}

	counter, ok := s.data[key]
	if !ok || !now.Before(counter.windowEnd) {
		counter = &memoryCounter{windowEnd: now.Add(window)}
		s.data[key] = counter
	}

	counter.count++

	return counter.count, counter.windowEnd.Sub(now), nil
}

// storeRateStore keeps counters in a shared cache.Store so limits hold across instances.
type storeRateStore struct {
	store cache.Store
}

// NewDatabaseRateStore builds a RateStore based on the SQL database cache.
func NewDatabaseRateStore(store cache.Store) RateStore {
	if store == nil {
		return nil
	}
	return &storeRateStore{store: store}
}

func (s *storeRateStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	if window <= 0 {
		window = time.Minute
	}
	count, ttl, err := s.store.IncrementWithTTL(ctx, "ratelimit:"+key, window)
	return int(count), ttl, err
}
