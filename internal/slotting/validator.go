// Package slotting holds the pure slot-allocation logic: capacity
// validation and scored location selection. Nothing here touches the
// store; everything is safe to call concurrently.
package slotting

import (
	"fmt"

	"github.com/stackrow/warehouse/internal/model"
)

type CapacityReason string

const (
	ReasonNotAvailable   CapacityReason = "NOT_AVAILABLE"
	ReasonNotVerified    CapacityReason = "NOT_VERIFIED"
	ReasonWrongLevel     CapacityReason = "WRONG_LEVEL"
	ReasonStackFull      CapacityReason = "STACK_FULL"
	ReasonWeightExceeded CapacityReason = "WEIGHT_EXCEEDED"
)

// CapacityError explains why a location cannot take a requested placement.
type CapacityError struct {
	Reason       CapacityReason
	LocationCode string
	// Requested placement weight in kg.
	RequestedWeight float64
	// Remaining weight capacity; set for WEIGHT_EXCEEDED.
	Headroom float64
}

func (e *CapacityError) Error() string {
	switch e.Reason {
	case ReasonNotAvailable:
		return fmt.Sprintf("location %s is not available", e.LocationCode)
	case ReasonNotVerified:
		return fmt.Sprintf("location %s is not verified", e.LocationCode)
	case ReasonWrongLevel:
		return fmt.Sprintf("location %s is at the wrong level for this item", e.LocationCode)
	case ReasonStackFull:
		return fmt.Sprintf("ground location %s has reached maximum capacity (%d items)", e.LocationCode, model.MaxGroundItems)
	case ReasonWeightExceeded:
		return fmt.Sprintf("weight (%.0fkg) exceeds location %s capacity (%.0fkg available)", e.RequestedWeight, e.LocationCode, e.Headroom)
	default:
		return fmt.Sprintf("location %s rejected: %s", e.LocationCode, e.Reason)
	}
}

// Validate checks whether a location can take the requested placement.
// It returns nil when eligible. Pure; no hidden state.
//
// The specific refusals (wrong level, unverified, stack full, weight
// exceeded) are reported before the generic availability flag: the flag
// is derived from the same occupancy fields, so checking it first would
// mask the reason a full location is full.
func Validate(loc *model.Location, weight float64, isGroundLevel bool) *CapacityError {
	if isGroundLevel != loc.IsGround() {
		return &CapacityError{Reason: ReasonWrongLevel, LocationCode: loc.Code, RequestedWeight: weight}
	}
	if !loc.Verified {
		return &CapacityError{Reason: ReasonNotVerified, LocationCode: loc.Code, RequestedWeight: weight}
	}

	if isGroundLevel {
		if loc.StackCount() >= model.MaxGroundItems {
			return &CapacityError{Reason: ReasonStackFull, LocationCode: loc.Code, RequestedWeight: weight}
		}
		return nil
	}

	if loc.CurrentWeight+weight > loc.MaxWeight {
		return &CapacityError{
			Reason:          ReasonWeightExceeded,
			LocationCode:    loc.Code,
			RequestedWeight: weight,
			Headroom:        loc.MaxWeight - loc.CurrentWeight,
		}
	}
	if !loc.Available {
		return &CapacityError{Reason: ReasonNotAvailable, LocationCode: loc.Code, RequestedWeight: weight}
	}

	return nil
}
