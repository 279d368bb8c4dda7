package model

import (
	"errors"
	"fmt"
	"time"
)

// Category is a stock-counted material family.
type Category struct {
	ID          string
	Name        string
	Prefix      string
	Description string
	IsDefault   bool
	// Nil for categories tracked by individually placed items.
	KanbanRules *KanbanRules
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// KanbanRules drives quantity-based stock tracking for a category.
type KanbanRules struct {
	// Intake is handled by quantity transactions instead of placed items.
	GoodsIn         bool
	MinQuantity     int64
	MaxQuantity     int64
	ReorderPoint    int64
	ReorderQuantity int64
	CurrentQuantity int64
	FixedLocations  []string
}

// Validate checks the configuration invariants of an enabled rule set.
func (r *KanbanRules) Validate() error {
	var errs []error
	if r.MinQuantity >= r.MaxQuantity {
		errs = append(errs, fmt.Errorf("minQuantity (%d) must be below maxQuantity (%d)", r.MinQuantity, r.MaxQuantity))
	}
	if r.ReorderPoint < r.MinQuantity {
		errs = append(errs, fmt.Errorf("reorderPoint (%d) must be at least minQuantity (%d)", r.ReorderPoint, r.MinQuantity))
	}
	if r.ReorderQuantity <= 0 {
		errs = append(errs, errors.New("reorderQuantity must be positive"))
	}
	if r.CurrentQuantity < 0 || r.CurrentQuantity > r.MaxQuantity {
		errs = append(errs, fmt.Errorf("currentQuantity (%d) out of range [0, %d]", r.CurrentQuantity, r.MaxQuantity))
	}
	if len(r.FixedLocations) == 0 {
		errs = append(errs, errors.New("at least one fixed location required"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrValidation}, errs...)...)
	}
	return nil
}

// Classify returns the threshold a quantity falls under: at or below the
// minimum is critical, at or below the reorder point is reorder.
func (r *KanbanRules) Classify(quantity int64) Threshold {
	switch {
	case quantity <= r.MinQuantity:
		return ThresholdCritical
	case quantity <= r.ReorderPoint:
		return ThresholdReorder
	default:
		return ThresholdNone
	}
}
