package repository

import (
	"github.com/stackrow/warehouse/internal/model"
)

func EntityToModel(e *ItemEntity) *model.Item {
	if e == nil {
		return nil
	}

	out := &model.Item{
		ID:               e.ID,
		ItemCode:         e.ItemCode,
		SystemCode:       e.SystemCode,
		Description:      e.Description,
		Weight:           e.Weight,
		Category:         e.Category,
		Status:           model.ItemStatus(e.Status),
		LocationVerified: e.LocationVerified,
		LastUpdated:      e.LastUpdated,
	}

	if e.Location != "" {
		loc := e.Location
		out.Location = &loc
	}
	if e.Metadata != nil {
		out.Metadata = &model.ItemMetadata{
			CoilNumber:    e.Metadata.CoilNumber,
			CoilLength:    e.Metadata.CoilLength,
			IsGroundLevel: e.Metadata.IsGroundLevel,
		}
	}

	return out
}

func EntityFromModel(i *model.Item) *ItemEntity {
	if i == nil {
		return nil
	}

	out := &ItemEntity{
		ID:               i.ID,
		ItemCode:         i.ItemCode,
		SystemCode:       i.SystemCode,
		Description:      i.Description,
		Weight:           i.Weight,
		Category:         i.Category,
		Status:           string(i.Status),
		LocationVerified: i.LocationVerified,
		LastUpdated:      i.LastUpdated,
	}

	if i.Location != nil {
		out.Location = *i.Location
	}
	if i.Metadata != nil {
		out.Metadata = &ItemMetadataEntity{
			CoilNumber:    i.Metadata.CoilNumber,
			CoilLength:    i.Metadata.CoilLength,
			IsGroundLevel: i.Metadata.IsGroundLevel,
		}
	}

	return out
}
