package model

import (
	"time"

	"github.com/google/uuid"
)

type Threshold string

const (
	ThresholdNone     Threshold = ""
	ThresholdReorder  Threshold = "REORDER"
	ThresholdCritical Threshold = "CRITICAL"
)

// QuantityProposal is the first phase of a kanban quantity change: the
// computed outcome and its threshold classification, not yet committed.
// The operator confirms via commit or discards via abort.
type QuantityProposal struct {
	ID         uuid.UUID
	CategoryID string
	Delta      int64
	// Quantity observed at propose time; advisory only, the commit
	// re-reads inside its own transaction.
	ObservedQuantity int64
	NewQuantity      int64
	Threshold        Threshold
	// Populated when a threshold is crossed.
	Alert     *StockAlert
	CreatedAt time.Time
}

// QuantityChange is a committed quantity transaction.
type QuantityChange struct {
	CategoryID  string
	Previous    int64
	Current     int64
	Threshold   Threshold
	Alert       *StockAlert
	CommittedAt time.Time
}

// StockAlert carries the advisory notification fields raised when a
// quantity change crosses a threshold. Dispatch is someone else's job;
// this is only the message content.
type StockAlert struct {
	CategoryID      string
	CategoryName    string
	Threshold       Threshold
	NewQuantity     int64
	MinQuantity     int64
	ReorderPoint    int64
	ReorderQuantity int64
	FixedLocations  []string
	// Rendered plain-text draft for the notification surface.
	Message string
}
