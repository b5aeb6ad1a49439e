package memory

import (
	"sync"
	"time"

	"gym-membership-be/internal/pkg/timeutil"

	"github.com/patrickmn/go-cache"
)

const snapshotKey = "snapshot"

type cachedSnapshot[T any] struct {
	value    T
	storedAt time.Time
}

// SnapshotCache holds one computed value and serves it until it is older than
// ttl according to the injected clock. It is never invalidated explicitly.
type SnapshotCache[T any] struct {
	cache *cache.Cache
	clock timeutil.Clock
	ttl   time.Duration
	mu    sync.Mutex
}

func NewSnapshotCache[T any](clock timeutil.Clock, ttl time.Duration) *SnapshotCache[T] {
	// Age is judged against the injected clock, so go-cache itself never expires the entry.
	return &SnapshotCache[T]{
		cache: cache.New(cache.NoExpiration, 0),
		clock: clock,
		ttl:   ttl,
	}
}

// Get returns the cached value when it is still fresh.
func (c *SnapshotCache[T]) Get() (T, bool) {
	var zero T
	x, found := c.cache.Get(snapshotKey)
	if !found {
		return zero, false
	}
	entry := x.(cachedSnapshot[T])
	if c.clock.Now().Sub(entry.storedAt) >= c.ttl {
		return zero, false
	}
	return entry.value, true
}

func (c *SnapshotCache[T]) Set(value T) {
	c.cache.Set(snapshotKey, cachedSnapshot[T]{value: value, storedAt: c.clock.Now()}, cache.NoExpiration)
}

// GetOrCompute serves the fresh value or recomputes it. Concurrent callers
// that miss together compute once.
func (c *SnapshotCache[T]) GetOrCompute(compute func() (T, error)) (T, error) {
	if v, ok := c.Get(); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.Get(); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	c.Set(v)
	return v, nil
}
