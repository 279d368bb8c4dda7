package kanban

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/stackrow/warehouse/internal/logger"
	"github.com/stackrow/warehouse/internal/model"
)

type CategoryRepository interface {
	ByID(ctx context.Context, id string) (*model.Category, error)
	UpdateQuantity(ctx context.Context, id string, delta int64) (*model.QuantityChange, error)
}

type MovementRepository interface {
	Add(ctx context.Context, movement *model.Movement) (string, error)
}

type AlertProducer interface {
	SendStockAlert(ctx context.Context, alert *model.StockAlert) error
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// ChangeParams describes a requested quantity change on a kanban
// category. Delta is signed: positive for goods in, negative for picks.
type ChangeParams struct {
	CategoryID string
	Delta      int64
	Operator   string
	Reference  string
	Notes      string
}

type proposal struct {
	params    ChangeParams
	outcome   *model.QuantityProposal
	cancelled bool
	expiresAt time.Time
}

// service runs kanban quantity changes as a two-phase exchange: Propose
// computes and classifies the outcome without writing, the operator then
// commits or aborts. Only Commit touches the store, inside a
// transaction that re-reads the quantity, so a stale proposal can never
// push the stock level outside its rails.
type service struct {
	categories CategoryRepository
	movements  MovementRepository
	alerts     AlertProducer
	clock      Clock
	ttl        time.Duration

	mu        sync.Mutex
	proposals map[uuid.UUID]*proposal
}

func NewKanbanService(
	categories CategoryRepository,
	movements MovementRepository,
	alerts AlertProducer,
	clock Clock,
	proposalTTL time.Duration,
) *service {
	if clock == nil {
		clock = SystemClock()
	}
	return &service{
		categories: categories,
		movements:  movements,
		alerts:     alerts,
		clock:      clock,
		ttl:        proposalTTL,
		proposals:  make(map[uuid.UUID]*proposal),
	}
}

// Propose validates a quantity change against the current stock level and
// returns the would-be outcome with its threshold classification. Nothing
// is written; the proposal is held until commit, abort, or expiry.
func (s *service) Propose(ctx context.Context, params ChangeParams) (*model.QuantityProposal, error) {
	const op = "kanban.service.Propose"
	log := logger.With(
		logger.String("category_id", params.CategoryID),
		logger.Int64("delta", params.Delta),
	)

	params.CategoryID = strings.TrimSpace(params.CategoryID)
	if params.CategoryID == "" {
		return nil, errors.Join(model.ErrValidation, errors.New("category id must be non-empty"))
	}
	if params.Delta == 0 {
		return nil, errors.Join(model.ErrValidation, errors.New("delta must be non-zero"))
	}

	category, err := s.categories.ByID(ctx, params.CategoryID)
	if err != nil {
		log.Error(ctx, "repository category by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rules := category.KanbanRules
	if rules == nil {
		return nil, model.ErrNoKanbanRules
	}

	observed := rules.CurrentQuantity
	next := observed + params.Delta
	if next < 0 {
		return nil, model.ErrQuantityUnderflow
	}
	if next > rules.MaxQuantity {
		return nil, model.ErrQuantityOverMax
	}

	now := s.clock.Now()
	out := &model.QuantityProposal{
		ID:               uuid.New(),
		CategoryID:       category.ID,
		Delta:            params.Delta,
		ObservedQuantity: observed,
		NewQuantity:      next,
		Threshold:        rules.Classify(next),
		CreatedAt:        now,
	}
	if out.Threshold != model.ThresholdNone {
		out.Alert = buildAlert(category, out.Threshold, next)
	}

	s.mu.Lock()
	s.gcLocked(now)
	s.proposals[out.ID] = &proposal{
		params:    params,
		outcome:   out,
		expiresAt: now.Add(s.ttl),
	}
	s.mu.Unlock()

	return out, nil
}

// Commit applies a previously proposed change. The stored quantity is
// re-read and range-checked inside the store transaction, so changes
// that landed since the proposal still count. Ledger and alert failures
// are logged, never propagated: the quantity change is the source of
// truth and has already committed.
func (s *service) Commit(ctx context.Context, proposalID uuid.UUID) (*model.QuantityChange, error) {
	const op = "kanban.service.Commit"

	s.mu.Lock()
	p, ok := s.proposals[proposalID]
	if ok && !s.clock.Now().Before(p.expiresAt) {
		delete(s.proposals, proposalID)
		ok = false
	}
	if !ok {
		s.mu.Unlock()
		return nil, model.ErrProposalNotFound
	}
	if p.cancelled {
		s.mu.Unlock()
		return nil, model.ErrOperationCancelled
	}
	delete(s.proposals, proposalID)
	s.mu.Unlock()

	log := logger.With(
		logger.String("category_id", p.params.CategoryID),
		logger.Int64("delta", p.params.Delta),
	)

	change, err := s.categories.UpdateQuantity(ctx, p.params.CategoryID, p.params.Delta)
	if err != nil {
		log.Error(ctx, "repository update quantity", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.record(ctx, p.params, change)
	s.alert(ctx, p.params.CategoryID, change)

	return change, nil
}

// Abort cancels a pending proposal. The entry stays until expiry so a
// late commit of the same ID fails loudly instead of vanishing.
func (s *service) Abort(_ context.Context, proposalID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.proposals[proposalID]
	if ok && !s.clock.Now().Before(p.expiresAt) {
		delete(s.proposals, proposalID)
		ok = false
	}
	if !ok {
		return model.ErrProposalNotFound
	}
	p.cancelled = true
	return nil
}

// record appends the committed change to the movement ledger. The ledger
// is reporting-only; a failed append is logged, not surfaced.
func (s *service) record(ctx context.Context, params ChangeParams, change *model.QuantityChange) {
	movementType := model.MovementIn
	if params.Delta < 0 {
		movementType = model.MovementOut
	}
	quantity := params.Delta
	if quantity < 0 {
		quantity = -quantity
	}

	_, err := s.movements.Add(ctx, &model.Movement{
		Type:      movementType,
		Operator:  params.Operator,
		Reference: params.Reference,
		Notes:     params.Notes,
		ItemID:    change.CategoryID,
		Quantity:  &quantity,
		Timestamp: lo.ToPtr(change.CommittedAt),
	})
	if err != nil {
		logger.Error(ctx, "record quantity movement",
			logger.String("category_id", change.CategoryID),
			logger.ErrorF(err),
		)
	}
}

// alert rebuilds the notification from the committed quantity and
// publishes it best-effort.
func (s *service) alert(ctx context.Context, categoryID string, change *model.QuantityChange) {
	if change.Threshold == model.ThresholdNone {
		return
	}

	category, err := s.categories.ByID(ctx, categoryID)
	if err != nil || category.KanbanRules == nil {
		logger.Warn(ctx, "stock alert: reload category",
			logger.String("category_id", categoryID),
			logger.ErrorF(err),
		)
		return
	}

	change.Alert = buildAlert(category, change.Threshold, change.Current)
	if err := s.alerts.SendStockAlert(ctx, change.Alert); err != nil {
		logger.Warn(ctx, "stock alert: publish",
			logger.String("category_id", categoryID),
			logger.ErrorF(err),
		)
	}
}

func buildAlert(category *model.Category, threshold model.Threshold, quantity int64) *model.StockAlert {
	rules := category.KanbanRules

	var b strings.Builder
	fmt.Fprintf(&b, "Low Stock Alert: %s\n", category.Name)
	fmt.Fprintf(&b, "Current Quantity: %d\n", quantity)
	fmt.Fprintf(&b, "Reorder Point: %d\n", rules.ReorderPoint)
	fmt.Fprintf(&b, "Recommended Order Quantity: %d\n", rules.ReorderQuantity)
	if threshold == model.ThresholdCritical {
		fmt.Fprintf(&b, "URGENT: quantity at or below minimum (%d).\n", rules.MinQuantity)
	}
	if len(rules.FixedLocations) > 0 {
		fmt.Fprintf(&b, "Fixed Locations: %s\n", strings.Join(rules.FixedLocations, ", "))
	}
	b.WriteString("Please process this reorder request as soon as possible.")

	return &model.StockAlert{
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		Threshold:       threshold,
		NewQuantity:     quantity,
		MinQuantity:     rules.MinQuantity,
		ReorderPoint:    rules.ReorderPoint,
		ReorderQuantity: rules.ReorderQuantity,
		FixedLocations:  rules.FixedLocations,
		Message:         b.String(),
	}
}

// gcLocked sweeps expired proposals; called with the mutex held.
func (s *service) gcLocked(now time.Time) {
	for id, p := range s.proposals {
		if !now.Before(p.expiresAt) {
			delete(s.proposals, id)
		}
	}
}
