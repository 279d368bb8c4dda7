package http

import (
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/stackrow/warehouse/internal/model"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type locationResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Row           string     `json:"row"`
	Bay           string     `json:"bay"`
	Level         string     `json:"level"`
	Position      string     `json:"position"`
	MaxWeight     *float64   `json:"maxWeight,omitempty"`
	CurrentWeight float64    `json:"currentWeight"`
	Available     bool       `json:"available"`
	Verified      bool       `json:"verified"`
	StackedItems  []string   `json:"stackedItems,omitempty"`
	LastUpdated   *time.Time `json:"lastUpdated,omitempty"`
}

func locationToDTO(l *model.Location) locationResponse {
	out := locationResponse{
		ID:            l.ID,
		Code:          l.Code,
		Row:           l.Row,
		Bay:           l.Bay,
		Level:         l.Level,
		Position:      l.Position,
		CurrentWeight: l.CurrentWeight,
		Available:     l.Available,
		Verified:      l.Verified,
		StackedItems:  l.StackedItems,
		LastUpdated:   l.LastUpdated,
	}
	// JSON has no +Inf; ground capacity is reported as absent.
	if !math.IsInf(l.MaxWeight, 1) {
		out.MaxWeight = lo.ToPtr(l.MaxWeight)
	}
	return out
}

func locationsToDTO(locs []*model.Location) []locationResponse {
	return lo.Map(locs, func(l *model.Location, _ int) locationResponse {
		return locationToDTO(l)
	})
}

type itemMetadataDTO struct {
	CoilNumber    string `json:"coilNumber,omitempty"`
	CoilLength    string `json:"coilLength,omitempty"`
	IsGroundLevel bool   `json:"isGroundLevel,omitempty"`
}

type itemResponse struct {
	ID               string           `json:"id"`
	ItemCode         string           `json:"itemCode"`
	SystemCode       string           `json:"systemCode"`
	Description      string           `json:"description,omitempty"`
	Weight           float64          `json:"weight"`
	Category         string           `json:"category,omitempty"`
	Status           string           `json:"status"`
	Location         *string          `json:"location,omitempty"`
	LocationVerified bool             `json:"locationVerified"`
	Metadata         *itemMetadataDTO `json:"metadata,omitempty"`
	LastUpdated      *time.Time       `json:"lastUpdated,omitempty"`
}

func itemToDTO(i *model.Item) itemResponse {
	out := itemResponse{
		ID:               i.ID,
		ItemCode:         i.ItemCode,
		SystemCode:       i.SystemCode,
		Description:      i.Description,
		Weight:           i.Weight,
		Category:         i.Category,
		Status:           string(i.Status),
		Location:         i.Location,
		LocationVerified: i.LocationVerified,
		LastUpdated:      i.LastUpdated,
	}
	if i.Metadata != nil {
		out.Metadata = &itemMetadataDTO{
			CoilNumber:    i.Metadata.CoilNumber,
			CoilLength:    i.Metadata.CoilLength,
			IsGroundLevel: i.Metadata.IsGroundLevel,
		}
	}
	return out
}

func itemsToDTO(items []*model.Item) []itemResponse {
	return lo.Map(items, func(i *model.Item, _ int) itemResponse {
		return itemToDTO(i)
	})
}

type kanbanRulesDTO struct {
	GoodsIn         bool     `json:"goodsIn"`
	MinQuantity     int64    `json:"minQuantity"`
	MaxQuantity     int64    `json:"maxQuantity"`
	ReorderPoint    int64    `json:"reorderPoint"`
	ReorderQuantity int64    `json:"reorderQuantity"`
	CurrentQuantity int64    `json:"currentQuantity"`
	FixedLocations  []string `json:"fixedLocations,omitempty"`
}

type categoryResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Prefix      string          `json:"prefix,omitempty"`
	Description string          `json:"description,omitempty"`
	IsDefault   bool            `json:"isDefault,omitempty"`
	KanbanRules *kanbanRulesDTO `json:"kanbanRules,omitempty"`
}

func categoryToDTO(c *model.Category) categoryResponse {
	out := categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Prefix:      c.Prefix,
		Description: c.Description,
		IsDefault:   c.IsDefault,
	}
	if c.KanbanRules != nil {
		out.KanbanRules = &kanbanRulesDTO{
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

type stockAlertDTO struct {
	CategoryID      string   `json:"categoryId"`
	CategoryName    string   `json:"categoryName"`
	Threshold       string   `json:"threshold"`
	NewQuantity     int64    `json:"newQuantity"`
	MinQuantity     int64    `json:"minQuantity"`
	ReorderPoint    int64    `json:"reorderPoint"`
	ReorderQuantity int64    `json:"reorderQuantity"`
	FixedLocations  []string `json:"fixedLocations,omitempty"`
	Message         string   `json:"message"`
}

func alertToDTO(a *model.StockAlert) *stockAlertDTO {
	if a == nil {
		return nil
	}
	return &stockAlertDTO{
		CategoryID:      a.CategoryID,
		CategoryName:    a.CategoryName,
		Threshold:       string(a.Threshold),
		NewQuantity:     a.NewQuantity,
		MinQuantity:     a.MinQuantity,
		ReorderPoint:    a.ReorderPoint,
		ReorderQuantity: a.ReorderQuantity,
		FixedLocations:  a.FixedLocations,
		Message:         a.Message,
	}
}

type proposalResponse struct {
	ID               string         `json:"id"`
	CategoryID       string         `json:"categoryId"`
	Delta            int64          `json:"delta"`
	ObservedQuantity int64          `json:"observedQuantity"`
	NewQuantity      int64          `json:"newQuantity"`
	Threshold        string         `json:"threshold,omitempty"`
	Alert            *stockAlertDTO `json:"alert,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

func proposalToDTO(p *model.QuantityProposal) proposalResponse {
	return proposalResponse{
		ID:               p.ID.String(),
		CategoryID:       p.CategoryID,
		Delta:            p.Delta,
		ObservedQuantity: p.ObservedQuantity,
		NewQuantity:      p.NewQuantity,
		Threshold:        string(p.Threshold),
		Alert:            alertToDTO(p.Alert),
		CreatedAt:        p.CreatedAt,
	}
}

type quantityChangeResponse struct {
	CategoryID  string         `json:"categoryId"`
	Previous    int64          `json:"previous"`
	Current     int64          `json:"current"`
	Threshold   string         `json:"threshold,omitempty"`
	Alert       *stockAlertDTO `json:"alert,omitempty"`
	CommittedAt time.Time      `json:"committedAt"`
}

func changeToDTO(c *model.QuantityChange) quantityChangeResponse {
	return quantityChangeResponse{
		CategoryID:  c.CategoryID,
		Previous:    c.Previous,
		Current:     c.Current,
		Threshold:   string(c.Threshold),
		Alert:       alertToDTO(c.Alert),
		CommittedAt: c.CommittedAt,
	}
}

type movementResponse struct {
	ID        string     `json:"id"`
	ItemID    string     `json:"itemId,omitempty"`
	Type      string     `json:"type"`
	Weight    float64    `json:"weight"`
	Operator  string     `json:"operator,omitempty"`
	Reference string     `json:"reference,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Quantity  *int64     `json:"quantity,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func movementsToDTO(ms []*model.Movement) []movementResponse {
	return lo.Map(ms, func(m *model.Movement, _ int) movementResponse {
		return movementResponse{
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
	})
}

type dashboardResponse struct {
	TotalItems   int64 `json:"totalItems"`
	GoodsInToday int   `json:"goodsInToday"`
	PicksToday   int   `json:"picksToday"`
}

type goodsInRequest struct {
	ItemCode      string  `json:"itemCode"`
	CategoryID    string  `json:"categoryId"`
	Weight        float64 `json:"weight,omitempty"`
	Quantity      int64   `json:"quantity,omitempty"`
	Operator      string  `json:"operator,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CoilNumber    string  `json:"coilNumber,omitempty"`
	CoilLength    string  `json:"coilLength,omitempty"`
	IsGroundLevel bool    `json:"isGroundLevel,omitempty"`
}

type goodsInResponse struct {
	Item     *itemResponse           `json:"item,omitempty"`
	Proposal *proposalResponse       `json:"proposal,omitempty"`
	Change   *quantityChangeResponse `json:"change,omitempty"`
}

type placeRequest struct {
	LocationCode string `json:"locationCode"`
	Operator     string `json:"operator,omitempty"`
}

type pickRequest struct {
	Operator string `json:"operator,omitempty"`
}

type proposeQuantityRequest struct {
	Delta     int64  `json:"delta"`
	Operator  string `json:"operator,omitempty"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
