package repository

import (
	"github.com/stackrow/warehouse/internal/model"
)

func EntityToModel(e *MovementEntity) *model.Movement {
	if e == nil {
		return nil
	}
	return &model.Movement{
		ID:        e.ID,
		ItemID:    e.ItemID,
		Type:      model.MovementType(e.Type),
		Weight:    e.Weight,
		Operator:  e.Operator,
		Reference: e.Reference,
		Notes:     e.Notes,
		Quantity:  e.Quantity,
		Timestamp: e.Timestamp,
	}
}

func EntityFromModel(m *model.Movement) *MovementEntity {
	if m == nil {
		return nil
	}
	return &MovementEntity{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Type:      string(m.Type),
		Weight:    m.Weight,
		Operator:  m.Operator,
		Reference: m.Reference,
		Notes:     m.Notes,
		Quantity:  m.Quantity,
		Timestamp: m.Timestamp,
	}
}
