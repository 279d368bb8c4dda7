package repository

import "time"

// LocationEntity mirrors the locations collection. The "location" field
// is the position within the bay, kept under its historical name for
// interoperability with other consumers of the store.
type LocationEntity struct {
	ID            string     `bson:"_id"`
	Code          string     `bson:"code"`
	Row           string     `bson:"row"`
	Bay           string     `bson:"bay"`
	Level         string     `bson:"level"`
	Position      string     `bson:"location"`
	MaxWeight     float64    `bson:"maxWeight"`
	CurrentWeight float64    `bson:"currentWeight"`
	Available     bool       `bson:"available"`
	Verified      bool       `bson:"verified"`
	StackedItems  []string   `bson:"stackedItems"`
	LastUpdated   *time.Time `bson:"lastUpdated,omitempty"`
}
