package repository

import "time"

type ItemEntity struct {
	ID               string              `bson:"_id"`
	ItemCode         string              `bson:"itemCode"`
	SystemCode       string              `bson:"systemCode"`
	Description      string              `bson:"description"`
	Weight           float64             `bson:"weight"`
	Category         string              `bson:"category,omitempty"`
	Status           string              `bson:"status"`
	Location         string              `bson:"location,omitempty"`
	LocationVerified bool                `bson:"locationVerified"`
	Metadata         *ItemMetadataEntity `bson:"metadata,omitempty"`
	LastUpdated      *time.Time          `bson:"lastUpdated,omitempty"`
}

type ItemMetadataEntity struct {
	CoilNumber    string `bson:"coilNumber,omitempty"`
	CoilLength    string `bson:"coilLength,omitempty"`
	IsGroundLevel bool   `bson:"isGroundLevel,omitempty"`
}
