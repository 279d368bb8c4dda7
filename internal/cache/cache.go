// Package cache is a small per-collection read-through cache with
// explicit invalidation. Entries are snapshots: callers must never
// mutate cached data in place.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL bounds the staleness window of cached reads.
const DefaultTTL = 30 * time.Second

// Collection keys shared by the repositories.
const (
	KeyLocations  = "locations"
	KeyItems      = "items"
	KeyCategories = "categories"
	KeyMovements  = "movements"
)

// Clock abstracts time so expiry is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

type entry struct {
	data      any
	fetchedAt time.Time
}

// Registry holds one snapshot per collection key.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   Clock
}

func NewRegistry(ttl time.Duration, clock Clock) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Registry{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached snapshot for key, or false when missing or
// older than the TTL.
func (r *Registry) Get(key string) (any, bool) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if r.clock.Now().Sub(e.fetchedAt) > r.ttl {
		return nil, false
	}
	return e.data, true
}

// Set stores a fresh snapshot for key.
func (r *Registry) Set(key string, data any) {
	r.mu.Lock()
	r.entries[key] = entry{data: data, fetchedAt: r.clock.Now()}
	r.mu.Unlock()
}

// Invalidate drops the given keys, or every entry when called with none.
// Writers call this immediately after a successful commit.
func (r *Registry) Invalidate(keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(keys) == 0 {
		r.entries = make(map[string]entry)
		return
	}
	for _, k := range keys {
		delete(r.entries, k)
	}
}
