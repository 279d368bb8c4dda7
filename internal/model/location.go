package model

import (
	"math"
	"time"
)

const (
	// GroundLevel is the level code of floor slots that stack discrete
	// items instead of weight-limiting a single load.
	GroundLevel = "0"

	// MaxGroundItems is the stacking cap of a ground-level location.
	MaxGroundItems = 6
)

// Location is a single addressable storage slot, identified by its
// human-readable code ROW+BAY-LEVEL-POSITION (e.g. "A01-2-3").
type Location struct {
	// Store-assigned document ID.
	ID string
	// Human-readable slot code.
	Code string
	// Row letter ("A"...).
	Row string
	// Zero-padded bay number ("01"...).
	Bay string
	// Level "0".."4"; "0" is ground.
	Level string
	// Position 1..3 within the bay.
	Position string
	// Weight capacity in kg; +Inf for ground locations.
	MaxWeight float64
	// Current load in kg; always 0 for ground locations.
	CurrentWeight float64
	// Cached projection of the occupancy state; recomputed on every
	// read and write, never the source of truth.
	Available bool
	// Location physically confirmed to exist.
	Verified bool
	// Ordered item reference codes, ground locations only.
	StackedItems []string
	// Timestamp of the last occupancy mutation.
	LastUpdated *time.Time
}

func (l *Location) IsGround() bool { return l.Level == GroundLevel }

func (l *Location) StackCount() int { return len(l.StackedItems) }

// IsFull reports whether the location can take no further load.
func (l *Location) IsFull() bool {
	if l.IsGround() {
		return l.StackCount() >= MaxGroundItems
	}
	return l.CurrentWeight > 0
}

// ComputeAvailable derives the availability flag from the occupancy
// fields alone. Verification is a separate gate: an unverified slot is
// still "available" in the occupancy sense, callers that care filter on
// Verified as well.
func (l *Location) ComputeAvailable() bool {
	return !l.IsFull()
}

// LevelMaxWeights holds the default per-level capacity in kg. Ground has
// no weight limit; it is bounded by MaxGroundItems instead.
var LevelMaxWeights = map[string]float64{
	"0": math.Inf(1),
	"1": 1500,
	"2": 1000,
	"3": 750,
	"4": 500,
}

// LevelMaxWeight returns the default capacity for a level, falling back to
// the given override when the level is unknown.
func LevelMaxWeight(level string, fallback float64) float64 {
	if w, ok := LevelMaxWeights[level]; ok {
		return w
	}
	return fallback
}
