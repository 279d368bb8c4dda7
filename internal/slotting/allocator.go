package slotting

import (
	"math"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/stackrow/warehouse/internal/model"
)

// Weights are the tunable multipliers of the shelf score formula. Their
// relative tuning is a policy decision, so they live in configuration.
type Weights struct {
	// Multiplier on the wasted-headroom term.
	Utilization float64
	// Multiplier on the weight-times-level term.
	Height float64
}

func DefaultWeights() Weights {
	return Weights{Utilization: 2, Height: 3}
}

// Allocator ranks candidate locations for a placement request and picks
// the single best one. Deterministic: equal scores fall back to location
// code order, so a permuted candidate list yields the same answer.
type Allocator struct {
	weights Weights
}

func NewAllocator(w Weights) *Allocator {
	if w.Utilization == 0 && w.Height == 0 {
		w = DefaultWeights()
	}
	return &Allocator{weights: w}
}

// FindOptimal returns the best eligible location for the request, or nil
// when no candidate survives filtering.
func (a *Allocator) FindOptimal(candidates []*model.Location, weight float64, isGroundLevel bool) *model.Location {
	eligible := lo.Filter(candidates, func(loc *model.Location, _ int) bool {
		return loc != nil && loc.Available && loc.Verified
	})
	if len(eligible) == 0 {
		return nil
	}

	if isGroundLevel {
		return a.findGround(eligible)
	}
	return a.findShelf(eligible, weight)
}

func (a *Allocator) findGround(candidates []*model.Location) *model.Location {
	ground := lo.Filter(candidates, func(loc *model.Location, _ int) bool {
		return loc.IsGround() && loc.StackCount() < model.MaxGroundItems
	})
	if len(ground) == 0 {
		return nil
	}

	sort.Slice(ground, func(i, j int) bool {
		// Emptiest stack first to balance load across ground bays.
		if ground[i].StackCount() != ground[j].StackCount() {
			return ground[i].StackCount() < ground[j].StackCount()
		}
		di, dj := groundDistance(ground[i]), groundDistance(ground[j])
		if di != dj {
			return di < dj
		}
		return ground[i].Code < ground[j].Code
	})

	return ground[0]
}

func (a *Allocator) findShelf(candidates []*model.Location, weight float64) *model.Location {
	shelves := lo.Filter(candidates, func(loc *model.Location, _ int) bool {
		return !loc.IsGround() && loc.CurrentWeight+weight <= loc.MaxWeight
	})
	if len(shelves) == 0 {
		return nil
	}

	sort.Slice(shelves, func(i, j int) bool {
		si, sj := a.Score(shelves[i], weight), a.Score(shelves[j], weight)
		if si != sj {
			return si < sj
		}
		return shelves[i].Code < shelves[j].Code
	})

	return shelves[0]
}

// Score computes the composite shelf score; lower is better. The distance
// term linearizes the row/bay grid toward row A, bay 1; the utilization
// term rewards filling a level close to its own capacity; the height term
// discourages heavy loads on high levels.
func (a *Allocator) Score(loc *model.Location, weight float64) float64 {
	levelNum, _ := strconv.Atoi(loc.Level)
	levelMax := model.LevelMaxWeight(loc.Level, loc.MaxWeight)
	newWeight := loc.CurrentWeight + weight

	distance := float64(rowOrdinal(loc)*100 + bayNumber(loc) - 1)
	utilization := math.Abs(levelMax-newWeight) * a.weights.Utilization
	height := weight * float64(levelNum) * a.weights.Height

	return distance + utilization + height
}

func groundDistance(loc *model.Location) int {
	return rowOrdinal(loc)*100 + bayNumber(loc)
}

func rowOrdinal(loc *model.Location) int {
	if loc.Row == "" {
		return 0
	}
	return int(loc.Row[0] - 'A')
}

func bayNumber(loc *model.Location) int {
	n, _ := strconv.Atoi(loc.Bay)
	return n
}
