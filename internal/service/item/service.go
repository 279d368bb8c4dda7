package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stackrow/warehouse/internal/logger"
	"github.com/stackrow/warehouse/internal/model"
	"github.com/stackrow/warehouse/internal/service/kanban"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) (string, error)
	BySystemCode(ctx context.Context, systemCode string) (*model.Item, error)
	List(ctx context.Context) ([]*model.Item, error)
	ListByStatus(ctx context.Context, status model.ItemStatus) ([]*model.Item, error)
}

type CategoryRepository interface {
	ByID(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
}

type MovementRepository interface {
	Add(ctx context.Context, movement *model.Movement) (string, error)
}

// Kanban is the quantity transactor used for intake into stock-counted
// categories.
type Kanban interface {
	Propose(ctx context.Context, params kanban.ChangeParams) (*model.QuantityProposal, error)
	Commit(ctx context.Context, proposalID uuid.UUID) (*model.QuantityChange, error)
}

// GoodsInParams is a single intake declaration. Quantity drives
// stock-counted categories, Weight drives individually placed items.
type GoodsInParams struct {
	ItemCode   string
	CategoryID string
	Weight     float64
	Quantity   int64
	Operator   string
	Notes      string

	CoilNumber    string
	CoilLength    string
	IsGroundLevel bool
}

// GoodsInResult is the outcome of an intake. Exactly one of Item,
// Proposal or Change is set: Item for individually tracked goods,
// Proposal when a kanban intake needs operator confirmation, Change when
// it auto-committed.
type GoodsInResult struct {
	Item     *model.Item
	Proposal *model.QuantityProposal
	Change   *model.QuantityChange
}

type service struct {
	items      ItemRepository
	categories CategoryRepository
	movements  MovementRepository
	kanban     Kanban
}

func NewItemService(
	items ItemRepository,
	categories CategoryRepository,
	movements MovementRepository,
	kanban Kanban,
) *service {
	return &service{
		items:      items,
		categories: categories,
		movements:  movements,
		kanban:     kanban,
	}
}

// GoodsIn books goods into the warehouse. Stock-counted categories route
// through the quantity transactor: a clean increase auto-commits, one
// that crosses a threshold comes back as a proposal awaiting operator
// confirmation. Everything else becomes a pending item carrying a
// generated system code.
func (s *service) GoodsIn(ctx context.Context, params GoodsInParams) (*GoodsInResult, error) {
	const op = "item.service.GoodsIn"
	log := logger.With(
		logger.String("item_code", params.ItemCode),
		logger.String("category_id", params.CategoryID),
	)

	params.ItemCode = strings.TrimSpace(params.ItemCode)
	params.CategoryID = strings.TrimSpace(params.CategoryID)
	if params.ItemCode == "" {
		return nil, errors.Join(model.ErrValidation, errors.New("item code must be non-empty"))
	}
	if params.CategoryID == "" {
		return nil, errors.Join(model.ErrValidation, errors.New("category must be selected"))
	}

	category, err := s.categories.ByID(ctx, params.CategoryID)
	if err != nil {
		log.Error(ctx, "repository category by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if category.KanbanRules != nil && category.KanbanRules.GoodsIn {
		return s.kanbanIntake(ctx, category, params)
	}
	return s.itemIntake(ctx, category, params)
}

func (s *service) kanbanIntake(ctx context.Context, category *model.Category, params GoodsInParams) (*GoodsInResult, error) {
	const op = "item.service.GoodsIn"

	if params.Quantity <= 0 {
		return nil, errors.Join(model.ErrValidation, errors.New("quantity must be positive"))
	}

	proposal, err := s.kanban.Propose(ctx, kanban.ChangeParams{
		CategoryID: category.ID,
		Delta:      params.Quantity,
		Operator:   params.Operator,
		Reference:  params.ItemCode,
		Notes:      params.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// No threshold crossed, nothing to confirm.
	if proposal.Threshold == model.ThresholdNone {
		change, err := s.kanban.Commit(ctx, proposal.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &GoodsInResult{Change: change}, nil
	}

	return &GoodsInResult{Proposal: proposal}, nil
}

func (s *service) itemIntake(ctx context.Context, category *model.Category, params GoodsInParams) (*GoodsInResult, error) {
	const op = "item.service.GoodsIn"

	if params.Weight <= 0 {
		return nil, errors.Join(model.ErrValidation, errors.New("weight must be positive"))
	}

	item := &model.Item{
		ItemCode:    params.ItemCode,
		SystemCode:  generateSystemCode(category),
		Weight:      params.Weight,
		Category:    category.ID,
		Status:      model.StatusPending,
		Description: strings.TrimSpace(params.Notes),
	}
	if params.CoilNumber != "" {
		item.Description = fmt.Sprintf("Coil: %s, Length: %sft", params.CoilNumber, params.CoilLength)
		item.Metadata = &model.ItemMetadata{
			CoilNumber:    params.CoilNumber,
			CoilLength:    params.CoilLength,
			IsGroundLevel: params.IsGroundLevel,
		}
	} else if params.IsGroundLevel {
		item.Metadata = &model.ItemMetadata{IsGroundLevel: true}
	}

	id, err := s.items.Create(ctx, item)
	if err != nil {
		logger.Error(ctx, "repository create item", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	item.ID = id

	s.record(ctx, item, params.Operator)
	return &GoodsInResult{Item: item}, nil
}

// BySystemCode resolves an item by its barcode payload.
func (s *service) BySystemCode(ctx context.Context, systemCode string) (*model.Item, error) {
	const op = "item.service.BySystemCode"

	systemCode = strings.TrimSpace(systemCode)
	if systemCode == "" {
		return nil, errors.Join(model.ErrValidation, errors.New("system code must be non-empty"))
	}

	item, err := s.items.BySystemCode(ctx, systemCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// List returns live items, optionally narrowed to one status. Reporting
// surface: degrades to an empty list on store failure.
func (s *service) List(ctx context.Context, status model.ItemStatus) []*model.Item {
	var (
		items []*model.Item
		err   error
	)
	if status == "" {
		items, err = s.items.List(ctx)
	} else {
		items, err = s.items.ListByStatus(ctx, status)
	}
	if err != nil {
		logger.Error(ctx, "list items", logger.ErrorF(err))
		return []*model.Item{}
	}
	return items
}

// Categories returns the category catalogue. Reporting surface: degrades
// to an empty list on store failure.
func (s *service) Categories(ctx context.Context) []*model.Category {
	cats, err := s.categories.List(ctx)
	if err != nil {
		logger.Error(ctx, "list categories", logger.ErrorF(err))
		return []*model.Category{}
	}
	return cats
}

func (s *service) record(ctx context.Context, item *model.Item, operator string) {
	_, err := s.movements.Add(ctx, &model.Movement{
		ItemID:    item.ID,
		Type:      model.MovementIn,
		Weight:    item.Weight,
		Operator:  operator,
		Reference: item.ItemCode,
		Notes:     "goods in",
	})
	if err != nil {
		logger.Error(ctx, "record intake movement",
			logger.String("item_id", item.ID),
			logger.ErrorF(err),
		)
	}
}

// generateSystemCode builds the barcode payload: category prefix, intake
// instant in unix millis, and a short random suffix for uniqueness
// within the same millisecond.
func generateSystemCode(category *model.Category) string {
	prefix := strings.ToUpper(strings.TrimSpace(category.Prefix))
	if prefix == "" {
		prefix = "ITM"
	}
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
