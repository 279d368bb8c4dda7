package repository

import (
	"math"

	"github.com/stackrow/warehouse/internal/model"
)

// EntityToModel normalizes a stored location: ground slots always report
// an unbounded weight capacity and a non-nil stack, and the availability
// flag is recomputed from the source fields rather than trusted.
func EntityToModel(e *LocationEntity) *model.Location {
	if e == nil {
		return nil
	}

	out := &model.Location{
		ID:            e.ID,
		Code:          e.Code,
		Row:           e.Row,
		Bay:           e.Bay,
		Level:         e.Level,
		Position:      e.Position,
		MaxWeight:     e.MaxWeight,
		CurrentWeight: e.CurrentWeight,
		Available:     e.Available,
		Verified:      e.Verified,
		StackedItems:  e.StackedItems,
		LastUpdated:   e.LastUpdated,
	}

	if out.IsGround() {
		out.MaxWeight = math.Inf(1)
		if out.StackedItems == nil {
			out.StackedItems = []string{}
		}
	}
	out.Available = out.ComputeAvailable()

	return out
}

func EntityFromModel(l *model.Location) *LocationEntity {
	if l == nil {
		return nil
	}

	out := &LocationEntity{
		ID:            l.ID,
		Code:          l.Code,
		Row:           l.Row,
		Bay:           l.Bay,
		Level:         l.Level,
		Position:      l.Position,
		MaxWeight:     l.MaxWeight,
		CurrentWeight: l.CurrentWeight,
		Available:     l.ComputeAvailable(),
		Verified:      l.Verified,
		StackedItems:  l.StackedItems,
		LastUpdated:   l.LastUpdated,
	}

	// BSON has no +Inf-friendly consumers downstream; ground capacity is
	// stored as 0 and restored to +Inf on read.
	if l.IsGround() && math.IsInf(out.MaxWeight, 1) {
		out.MaxWeight = 0
	}

	return out
}
