package repository

import "time"

type CategoryEntity struct {
	ID          string             `bson:"_id"`
	Name        string             `bson:"name"`
	Prefix      string             `bson:"prefix,omitempty"`
	Description string             `bson:"description,omitempty"`
	IsDefault   bool               `bson:"isDefault,omitempty"`
	KanbanRules *KanbanRulesEntity `bson:"kanbanRules,omitempty"`
	CreatedAt   *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty"`
}

type KanbanRulesEntity struct {
	GoodsIn         bool     `bson:"goodsIn"`
	MinQuantity     int64    `bson:"minQuantity"`
	MaxQuantity     int64    `bson:"maxQuantity"`
	ReorderPoint    int64    `bson:"reorderPoint"`
	ReorderQuantity int64    `bson:"reorderQuantity"`
	CurrentQuantity int64    `bson:"currentQuantity"`
	FixedLocations  []string `bson:"fixedLocations,omitempty"`
}
