package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestRegistryGetSet(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	r := NewRegistry(30*time.Second, clock)

	_, ok := r.Get(KeyLocations)
	assert.False(t, ok, "empty registry must miss")

	r.Set(KeyLocations, []string{"A01-1-1"})

	got, ok := r.Get(KeyLocations)
	require.True(t, ok)
	assert.Equal(t, []string{"A01-1-1"}, got)
}

func TestRegistryExpiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	r := NewRegistry(30*time.Second, clock)

	r.Set(KeyItems, 42)

	clock.Advance(30 * time.Second)
	_, ok := r.Get(KeyItems)
	assert.True(t, ok, "entry at exactly the TTL boundary is still fresh")

	clock.Advance(time.Millisecond)
	_, ok = r.Get(KeyItems)
	assert.False(t, ok, "entry past the TTL must miss")

	// A fresh Set resets the window.
	r.Set(KeyItems, 43)
	got, ok := r.Get(KeyItems)
	require.True(t, ok)
	assert.Equal(t, 43, got)
}

func TestRegistryInvalidate(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	r := NewRegistry(time.Minute, clock)

	r.Set(KeyLocations, 1)
	r.Set(KeyItems, 2)
	r.Set(KeyMovements, 3)

	r.Invalidate(KeyLocations)

	_, ok := r.Get(KeyLocations)
	assert.False(t, ok)
	_, ok = r.Get(KeyItems)
	assert.True(t, ok, "other partitions untouched")

	r.Invalidate()

	_, ok = r.Get(KeyItems)
	assert.False(t, ok)
	_, ok = r.Get(KeyMovements)
	assert.False(t, ok)
}

func TestRegistryDefaults(t *testing.T) {
	t.Parallel()

	r := NewRegistry(0, nil)

	r.Set(KeyCategories, "x")
	got, ok := r.Get(KeyCategories)
	require.True(t, ok)
	assert.Equal(t, "x", got)
}
