package repository

import "time"

type MovementEntity struct {
	ID        string     `bson:"_id"`
	ItemID    string     `bson:"itemId,omitempty"`
	Type      string     `bson:"type"`
	Weight    float64    `bson:"weight"`
	Operator  string     `bson:"operator,omitempty"`
	Reference string     `bson:"reference,omitempty"`
	Notes     string     `bson:"notes,omitempty"`
	Quantity  *int64     `bson:"quantity,omitempty"`
	Timestamp *time.Time `bson:"timestamp"`
}
