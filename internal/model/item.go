package model

import "time"

type ItemStatus string

const (
	StatusPending ItemStatus = "pending"
	StatusPlaced  ItemStatus = "placed"
	// StatusRemoved is terminal; the document is purged once it is reached.
	StatusRemoved ItemStatus = "removed"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPlaced, StatusRemoved:
		return true
	}
	return false
}

// Item is a physical unit tracked individually (non-kanban categories).
type Item struct {
	ID string
	// Operator-supplied reference code.
	ItemCode string
	// System-generated barcode payload, globally unique, time-derived.
	SystemCode  string
	Description string
	// Weight in kg.
	Weight   float64
	Category string
	Status   ItemStatus
	// Location code once placed, nil otherwise.
	Location         *string
	LocationVerified bool
	Metadata         *ItemMetadata
	LastUpdated      *time.Time
}

type ItemMetadata struct {
	CoilNumber    string
	CoilLength    string
	IsGroundLevel bool
}

// IsGroundLevel reports whether the item requires a ground slot.
func (i *Item) IsGroundLevel() bool {
	return i.Metadata != nil && i.Metadata.IsGroundLevel
}

// ItemUpdate is a partial update; zero-valued fields are left untouched.
type ItemUpdate struct {
	Status           ItemStatus
	Location         *string
	ClearLocation    bool
	LocationVerified *bool
}
