package placement

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stackrow/warehouse/internal/model"
	"github.com/stackrow/warehouse/internal/service/mocks"
	"github.com/stackrow/warehouse/internal/slotting"
)

func shelf(code string, level string, maxWeight, currentWeight float64) *model.Location {
	return &model.Location{
		ID:            gofakeit.UUID(),
		Code:          code,
		Row:           code[:1],
		Bay:           code[1:3],
		Level:         level,
		MaxWeight:     maxWeight,
		CurrentWeight: currentWeight,
		Available:     currentWeight == 0,
		Verified:      true,
	}
}

func TestPlacementSuggest(t *testing.T) {
	t.Parallel()

	type deps struct {
		locations *mocks.MockLocationRepository
		items     *mocks.MockItemRepository
		movements *mocks.MockMovementRepository
	}

	type testCase struct {
		name     string
		weight   float64
		isGround bool
		setup    func(d deps)
		assert   func(t *testing.T, res *model.Location, err error, d deps)
	}

	tests := []testCase{
		{
			name:   "validation error: negative weight",
			weight: -1,
			assert: func(t *testing.T, res *model.Location, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
				d.locations.AssertNotCalled(t, "List", mock.Anything)
			},
		},
		{
			name:   "repository error propagates",
			weight: 200,
			setup: func(d deps) {
				d.locations.
					On("List", mock.Anything).
					Return(([]*model.Location)(nil), errors.New("db read failed")).
					Once()
			},
			assert: func(t *testing.T, res *model.Location, err error, d deps) {
				require.Error(t, err)
				assert.ErrorContains(t, err, "db read failed")
				assert.Nil(t, res)
			},
		},
		{
			name:   "no eligible slot",
			weight: 2000,
			setup: func(d deps) {
				d.locations.
					On("List", mock.Anything).
					Return([]*model.Location{shelf("A01-1-1", "1", 1500, 0)}, nil).
					Once()
			},
			assert: func(t *testing.T, res *model.Location, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrNoLocationAvailable)
				assert.Nil(t, res)
			},
		},
		{
			name:   "single eligible slot wins",
			weight: 200,
			setup: func(d deps) {
				d.locations.
					On("List", mock.Anything).
					Return([]*model.Location{shelf("A01-1-1", "1", 1500, 0)}, nil).
					Once()
			},
			assert: func(t *testing.T, res *model.Location, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.Equal(t, "A01-1-1", res.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				locations: mocks.NewMockLocationRepository(t),
				items:     mocks.NewMockItemRepository(t),
				movements: mocks.NewMockMovementRepository(t),
			}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := NewPlacementService(d.locations, d.items, d.movements, slotting.NewAllocator(slotting.DefaultWeights()))

			res, err := svc.Suggest(context.Background(), tt.weight, tt.isGround)
			tt.assert(t, res, err, d)
		})
	}
}

func TestPlacementPlace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newItem := func(status model.ItemStatus) *model.Item {
		return &model.Item{
			ID:         gofakeit.UUID(),
			ItemCode:   "REF-100",
			SystemCode: "STL-1700000000000-AB12",
			Weight:     200,
			Status:     status,
		}
	}

	t.Run("validation error: blank codes", func(t *testing.T) {
		t.Parallel()

		svc := NewPlacementService(
			mocks.NewMockLocationRepository(t),
			mocks.NewMockItemRepository(t),
			mocks.NewMockMovementRepository(t),
			slotting.NewAllocator(slotting.DefaultWeights()),
		)

		res, err := svc.Place(ctx, "  ", "A01-1-1", "jordan")
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Nil(t, res)
	})

	t.Run("already placed item is refused", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		item := newItem(model.StatusPlaced)
		items.On("BySystemCode", mock.Anything, item.SystemCode).Return(item, nil).Once()

		svc := NewPlacementService(
			mocks.NewMockLocationRepository(t),
			items,
			mocks.NewMockMovementRepository(t),
			slotting.NewAllocator(slotting.DefaultWeights()),
		)

		res, err := svc.Place(ctx, item.SystemCode, "A01-1-1", "jordan")
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Nil(t, res)
	})

	t.Run("capacity refusal surfaces the typed error", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		locations := mocks.NewMockLocationRepository(t)

		item := newItem(model.StatusPending)
		item.Weight = 900
		loc := shelf("A01-1-1", "1", 1000, 200)
		loc.Available = true

		items.On("BySystemCode", mock.Anything, item.SystemCode).Return(item, nil).Once()
		locations.On("ByCode", mock.Anything, loc.Code).Return(loc, nil).Once()

		svc := NewPlacementService(locations, items, mocks.NewMockMovementRepository(t), slotting.NewAllocator(slotting.DefaultWeights()))

		res, err := svc.Place(ctx, item.SystemCode, loc.Code, "jordan")
		require.Error(t, err)
		assert.Nil(t, res)

		var capErr *slotting.CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, slotting.ReasonWeightExceeded, capErr.Reason)
		locations.AssertNotCalled(t, "CommitPlacement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success: occupancy committed, item placed, ledger untouched", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		locations := mocks.NewMockLocationRepository(t)
		movements := mocks.NewMockMovementRepository(t)

		item := newItem(model.StatusPending)
		loc := shelf("B02-1-1", "1", 1500, 0)

		items.On("BySystemCode", mock.Anything, item.SystemCode).Return(item, nil).Once()
		locations.On("ByCode", mock.Anything, loc.Code).Return(loc, nil).Once()
		locations.
			On("CommitPlacement", mock.Anything, loc.ID, item.Weight, item.ItemCode).
			Return(loc, nil).
			Once()
		items.
			On("Update", mock.Anything, item.ID, model.ItemUpdate{
				Status:           model.StatusPlaced,
				Location:         &loc.Code,
				LocationVerified: lo.ToPtr(true),
			}).
			Return(nil).
			Once()
		svc := NewPlacementService(locations, items, movements, slotting.NewAllocator(slotting.DefaultWeights()))

		res, err := svc.Place(ctx, item.SystemCode, loc.Code, "jordan")
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, model.StatusPlaced, res.Status)
		require.NotNil(t, res.Location)
		assert.Equal(t, loc.Code, *res.Location)
		assert.True(t, res.LocationVerified)

		// Intake already wrote the IN entry, a placement is a relocation
		// and must not add a second one.
		movements.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}

func TestPlacementPick(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("item not placed", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		items.
			On("BySystemCode", mock.Anything, "STL-1-AAAA").
			Return(&model.Item{ID: gofakeit.UUID(), Status: model.StatusPending}, nil).
			Once()

		svc := NewPlacementService(
			mocks.NewMockLocationRepository(t),
			items,
			mocks.NewMockMovementRepository(t),
			slotting.NewAllocator(slotting.DefaultWeights()),
		)

		err := svc.Pick(ctx, "STL-1-AAAA", "jordan")
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("success: occupancy released, item retired, movement recorded", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		locations := mocks.NewMockLocationRepository(t)
		movements := mocks.NewMockMovementRepository(t)

		loc := shelf("A01-1-1", "1", 1500, 200)
		item := &model.Item{
			ID:         gofakeit.UUID(),
			ItemCode:   "REF-100",
			SystemCode: "STL-1-AAAA",
			Weight:     200,
			Status:     model.StatusPlaced,
			Location:   &loc.Code,
		}

		items.On("BySystemCode", mock.Anything, item.SystemCode).Return(item, nil).Once()
		locations.On("ByCode", mock.Anything, loc.Code).Return(loc, nil).Once()
		locations.
			On("CommitRemoval", mock.Anything, loc.ID, item.Weight, item.ItemCode).
			Return(loc, nil).
			Once()
		items.
			On("Update", mock.Anything, item.ID, model.ItemUpdate{Status: model.StatusRemoved}).
			Return(nil).
			Once()
		movements.
			On("Add", mock.Anything, mock.MatchedBy(func(m *model.Movement) bool {
				return m.Type == model.MovementOut && m.ItemID == item.ID
			})).
			Return(gofakeit.UUID(), nil).
			Once()

		svc := NewPlacementService(locations, items, movements, slotting.NewAllocator(slotting.DefaultWeights()))

		require.NoError(t, svc.Pick(ctx, item.SystemCode, "jordan"))
	})
}

func TestPlacementListLocationsDegrades(t *testing.T) {
	t.Parallel()

	locations := mocks.NewMockLocationRepository(t)
	locations.
		On("List", mock.Anything).
		Return(([]*model.Location)(nil), errors.New("db read failed")).
		Once()

	svc := NewPlacementService(
		locations,
		mocks.NewMockItemRepository(t),
		mocks.NewMockMovementRepository(t),
		slotting.NewAllocator(slotting.DefaultWeights()),
	)

	assert.Empty(t, svc.ListLocations(context.Background()))
}
