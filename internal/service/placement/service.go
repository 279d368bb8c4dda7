package placement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/stackrow/warehouse/internal/logger"
	"github.com/stackrow/warehouse/internal/model"
	"github.com/stackrow/warehouse/internal/slotting"
)

type LocationRepository interface {
	List(ctx context.Context) ([]*model.Location, error)
	ByCode(ctx context.Context, code string) (*model.Location, error)
	CommitPlacement(ctx context.Context, locationID string, weight float64, itemRef string) (*model.Location, error)
	CommitRemoval(ctx context.Context, locationID string, weight float64, itemRef string) (*model.Location, error)
}

type ItemRepository interface {
	BySystemCode(ctx context.Context, systemCode string) (*model.Item, error)
	Update(ctx context.Context, id string, upd model.ItemUpdate) error
	ListByLocation(ctx context.Context, locationCode string) ([]*model.Item, error)
}

type MovementRepository interface {
	Add(ctx context.Context, movement *model.Movement) (string, error)
}

// service drives the placement lifecycle: suggesting a slot for an
// incoming load, committing a placement against a slot, and releasing it
// on pick.
type service struct {
	locations LocationRepository
	items     ItemRepository
	movements MovementRepository
	allocator *slotting.Allocator
}

func NewPlacementService(
	locations LocationRepository,
	items ItemRepository,
	movements MovementRepository,
	allocator *slotting.Allocator,
) *service {
	return &service{
		locations: locations,
		items:     items,
		movements: movements,
		allocator: allocator,
	}
}

// ListLocations returns the current slot map. Read-only reporting
// surface: on store failure it degrades to an empty list instead of
// failing the caller.
func (s *service) ListLocations(ctx context.Context) []*model.Location {
	locs, err := s.locations.List(ctx)
	if err != nil {
		logger.Error(ctx, "list locations", logger.ErrorF(err))
		return []*model.Location{}
	}
	return locs
}

// Suggest picks the optimal open slot for a load of the given weight.
func (s *service) Suggest(ctx context.Context, weight float64, isGroundLevel bool) (*model.Location, error) {
	const op = "placement.service.Suggest"

	if weight < 0 {
		return nil, errors.Join(model.ErrValidation, errors.New("weight must be non-negative"))
	}

	locs, err := s.locations.List(ctx)
	if err != nil {
		logger.Error(ctx, "list locations", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	best := s.allocator.FindOptimal(locs, weight, isGroundLevel)
	if best == nil {
		return nil, model.ErrNoLocationAvailable
	}
	return best, nil
}

// Place commits an item into a slot: the capacity check runs up front
// for a typed refusal, the occupancy write re-checks inside its
// transaction, and the item flips to placed with a verified location.
// The ledger is untouched: intake already recorded the IN, placement is
// a relocation within the warehouse.
func (s *service) Place(ctx context.Context, systemCode, locationCode, operator string) (*model.Item, error) {
	const op = "placement.service.Place"
	log := logger.With(
		logger.String("system_code", systemCode),
		logger.String("location_code", locationCode),
	)

	systemCode = strings.TrimSpace(systemCode)
	locationCode = strings.TrimSpace(locationCode)
	if systemCode == "" || locationCode == "" {
		return nil, errors.Join(model.ErrValidation, errors.New("system code and location code must be non-empty"))
	}

	item, err := s.items.BySystemCode(ctx, systemCode)
	if err != nil {
		log.Error(ctx, "repository item by system code", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if item.Status == model.StatusPlaced {
		return nil, errors.Join(model.ErrValidation, fmt.Errorf("item %s is already placed", systemCode))
	}

	loc, err := s.locations.ByCode(ctx, locationCode)
	if err != nil {
		log.Error(ctx, "repository location by code", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if capErr := slotting.Validate(loc, item.Weight, item.IsGroundLevel()); capErr != nil {
		return nil, capErr
	}

	if _, err := s.locations.CommitPlacement(ctx, loc.ID, item.Weight, item.ItemCode); err != nil {
		log.Error(ctx, "commit placement", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = s.items.Update(ctx, item.ID, model.ItemUpdate{
		Status:           model.StatusPlaced,
		Location:         &loc.Code,
		LocationVerified: lo.ToPtr(true),
	})
	if err != nil {
		log.Error(ctx, "update item after placement", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item.Status = model.StatusPlaced
	item.Location = &loc.Code
	item.LocationVerified = true
	return item, nil
}

// Pick releases an item from its slot and retires it. The item document
// is purged on the removed transition; the ledger keeps the trace.
func (s *service) Pick(ctx context.Context, systemCode, operator string) error {
	const op = "placement.service.Pick"
	log := logger.With(
		logger.String("system_code", systemCode),
	)

	systemCode = strings.TrimSpace(systemCode)
	if systemCode == "" {
		return errors.Join(model.ErrValidation, errors.New("system code must be non-empty"))
	}

	item, err := s.items.BySystemCode(ctx, systemCode)
	if err != nil {
		log.Error(ctx, "repository item by system code", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if item.Status != model.StatusPlaced || item.Location == nil {
		return errors.Join(model.ErrValidation, fmt.Errorf("item %s is not placed", systemCode))
	}

	loc, err := s.locations.ByCode(ctx, *item.Location)
	if err != nil {
		log.Error(ctx, "repository location by code", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.locations.CommitRemoval(ctx, loc.ID, item.Weight, item.ItemCode); err != nil {
		log.Error(ctx, "commit removal", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.items.Update(ctx, item.ID, model.ItemUpdate{Status: model.StatusRemoved}); err != nil {
		log.Error(ctx, "retire item after pick", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.record(ctx, item, model.MovementOut, operator, fmt.Sprintf("picked from %s", loc.Code))
	return nil
}

// ItemsAt returns the placed items assigned to a location code. Reporting
// surface: degrades to an empty list on store failure.
func (s *service) ItemsAt(ctx context.Context, locationCode string) []*model.Item {
	items, err := s.items.ListByLocation(ctx, locationCode)
	if err != nil {
		logger.Error(ctx, "list items by location",
			logger.String("location_code", locationCode),
			logger.ErrorF(err),
		)
		return []*model.Item{}
	}
	return items
}

// record appends to the movement ledger, log-on-failure.
func (s *service) record(ctx context.Context, item *model.Item, t model.MovementType, operator, notes string) {
	_, err := s.movements.Add(ctx, &model.Movement{
		ItemID:    item.ID,
		Type:      t,
		Weight:    item.Weight,
		Operator:  operator,
		Reference: item.ItemCode,
		Notes:     notes,
	})
	if err != nil {
		logger.Error(ctx, "record movement",
			logger.String("item_id", item.ID),
			logger.ErrorF(err),
		)
	}
}
