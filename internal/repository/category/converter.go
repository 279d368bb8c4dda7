package repository

import (
	"github.com/stackrow/warehouse/internal/model"
)

func EntityToModel(e *CategoryEntity) *model.Category {
	if e == nil {
		return nil
	}

	out := &model.Category{
		ID:          e.ID,
		Name:        e.Name,
		Prefix:      e.Prefix,
		Description: e.Description,
		IsDefault:   e.IsDefault,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if e.KanbanRules != nil {
		out.KanbanRules = &model.KanbanRules{
			GoodsIn:         e.KanbanRules.GoodsIn,
			MinQuantity:     e.KanbanRules.MinQuantity,
			MaxQuantity:     e.KanbanRules.MaxQuantity,
			ReorderPoint:    e.KanbanRules.ReorderPoint,
			ReorderQuantity: e.KanbanRules.ReorderQuantity,
			CurrentQuantity: e.KanbanRules.CurrentQuantity,
			FixedLocations:  e.KanbanRules.FixedLocations,
		}
	}

	return out
}

func EntityFromModel(c *model.Category) *CategoryEntity {
	if c == nil {
		return nil
	}

	out := &CategoryEntity{
		ID:          c.ID,
		Name:        c.Name,
		Prefix:      c.Prefix,
		Description: c.Description,
		IsDefault:   c.IsDefault,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	if c.KanbanRules != nil {
		out.KanbanRules = &KanbanRulesEntity{
			GoodsIn:         c.KanbanRules.GoodsIn,
			MinQuantity:     c.KanbanRules.MinQuantity,
			MaxQuantity:     c.KanbanRules.MaxQuantity,
			ReorderPoint:    c.KanbanRules.ReorderPoint,
			ReorderQuantity: c.KanbanRules.ReorderQuantity,
			CurrentQuantity: c.KanbanRules.CurrentQuantity,
			FixedLocations:  c.KanbanRules.FixedLocations,
		}
	}

	return out
}
