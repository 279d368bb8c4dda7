package model

import "time"

type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// Movement is an append-only ledger entry. Never mutated or deleted;
// consumed only for reporting.
type Movement struct {
	ID     string
	ItemID string
	Type   MovementType
	Weight float64
	// Operator who triggered the movement.
	Operator string
	// Operator-facing reference (usually the item code).
	Reference string
	Notes     string
	// Set for kanban quantity movements.
	Quantity  *int64
	Timestamp *time.Time
}

// DashboardStats is the reporting summary consumed by the dashboard surface.
type DashboardStats struct {
	TotalItems   int64
	GoodsInToday int
	PicksToday   int
}
