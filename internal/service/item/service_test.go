package item

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stackrow/warehouse/internal/model"
	"github.com/stackrow/warehouse/internal/service/kanban"
	"github.com/stackrow/warehouse/internal/service/mocks"
)

func TestGoodsIn(t *testing.T) {
	t.Parallel()

	type deps struct {
		items      *mocks.MockItemRepository
		categories *mocks.MockCategoryRepository
		movements  *mocks.MockMovementRepository
		kanban     *mocks.MockKanban
	}

	type testCase struct {
		name   string
		params GoodsInParams
		setup  func(d deps)
		assert func(t *testing.T, res *GoodsInResult, err error, d deps)
	}

	plainCategory := &model.Category{
		ID:     "cat-steel",
		Name:   "Steel Coils",
		Prefix: "STL",
	}
	kanbanCategory := &model.Category{
		ID:   "cat-bolts",
		Name: "Bolts",
		KanbanRules: &model.KanbanRules{
			GoodsIn:         true,
			MinQuantity:     10,
			MaxQuantity:     100,
			ReorderPoint:    20,
			ReorderQuantity: 30,
			CurrentQuantity: 25,
			FixedLocations:  []string{"C03-0-1"},
		},
	}

	tests := []testCase{
		{
			name:   "validation error: empty item code",
			params: GoodsInParams{ItemCode: "  ", CategoryID: "cat-steel", Weight: 100},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
				d.categories.AssertNotCalled(t, "ByID", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "validation error: no category",
			params: GoodsInParams{ItemCode: "REF-1", Weight: 100},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
			},
		},
		{
			name:   "unknown category",
			params: GoodsInParams{ItemCode: "REF-1", CategoryID: "nope", Weight: 100},
			setup: func(d deps) {
				d.categories.
					On("ByID", mock.Anything, "nope").
					Return((*model.Category)(nil), model.ErrCategoryNotFound).
					Once()
			},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrCategoryNotFound)
				assert.Nil(t, res)
			},
		},
		{
			name:   "validation error: non-kanban intake without weight",
			params: GoodsInParams{ItemCode: "REF-1", CategoryID: plainCategory.ID},
			setup: func(d deps) {
				d.categories.
					On("ByID", mock.Anything, plainCategory.ID).
					Return(plainCategory, nil).
					Once()
			},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
				d.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name: "non-kanban intake creates a pending item with system code",
			params: GoodsInParams{
				ItemCode:      " REF-1 ",
				CategoryID:    plainCategory.ID,
				Weight:        250,
				Operator:      "jordan",
				CoilNumber:    "3",
				CoilLength:    "40",
				IsGroundLevel: true,
			},
			setup: func(d deps) {
				d.categories.
					On("ByID", mock.Anything, plainCategory.ID).
					Return(plainCategory, nil).
					Once()
				d.items.
					On("Create", mock.Anything, mock.MatchedBy(func(i *model.Item) bool {
						return i.ItemCode == "REF-1" &&
							i.Status == model.StatusPending &&
							strings.HasPrefix(i.SystemCode, "STL-") &&
							i.Metadata != nil && i.Metadata.IsGroundLevel
					})).
					Return("item-1", nil).
					Once()
				d.movements.
					On("Add", mock.Anything, mock.MatchedBy(func(m *model.Movement) bool {
						return m.Type == model.MovementIn && m.ItemID == "item-1" && m.Weight == 250
					})).
					Return(gofakeit.UUID(), nil).
					Once()
			},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				require.NotNil(t, res.Item)
				assert.Nil(t, res.Proposal)
				assert.Nil(t, res.Change)
				assert.Equal(t, "item-1", res.Item.ID)
				assert.Equal(t, "Coil: 3, Length: 40ft", res.Item.Description)
				d.kanban.AssertNotCalled(t, "Propose", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "kanban intake without quantity is refused",
			params: GoodsInParams{ItemCode: "REF-2", CategoryID: kanbanCategory.ID},
			setup: func(d deps) {
				d.categories.
					On("ByID", mock.Anything, kanbanCategory.ID).
					Return(kanbanCategory, nil).
					Once()
			},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
			},
		},
		{
			name: "kanban intake with no threshold auto-commits",
			params: GoodsInParams{
				ItemCode:   "REF-2",
				CategoryID: kanbanCategory.ID,
				Quantity:   10,
				Operator:   "jordan",
			},
			setup: func(d deps) {
				d.categories.
					On("ByID", mock.Anything, kanbanCategory.ID).
					Return(kanbanCategory, nil).
					Once()

				proposalID := uuid.New()
				d.kanban.
					On("Propose", mock.Anything, kanban.ChangeParams{
						CategoryID: kanbanCategory.ID,
						Delta:      10,
						Operator:   "jordan",
						Reference:  "REF-2",
					}).
					Return(&model.QuantityProposal{
						ID:          proposalID,
						CategoryID:  kanbanCategory.ID,
						NewQuantity: 35,
						Threshold:   model.ThresholdNone,
					}, nil).
					Once()
				d.kanban.
					On("Commit", mock.Anything, proposalID).
					Return(&model.QuantityChange{
						CategoryID: kanbanCategory.ID,
						Previous:   25,
						Current:    35,
					}, nil).
					Once()
			},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				require.NotNil(t, res.Change)
				assert.Nil(t, res.Item)
				assert.Nil(t, res.Proposal)
				assert.Equal(t, int64(35), res.Change.Current)
				d.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name: "kanban intake crossing a threshold returns the proposal",
			params: GoodsInParams{
				ItemCode:   "REF-3",
				CategoryID: kanbanCategory.ID,
				Quantity:   60,
			},
			setup: func(d deps) {
				d.categories.
					On("ByID", mock.Anything, kanbanCategory.ID).
					Return(kanbanCategory, nil).
					Once()
				d.kanban.
					On("Propose", mock.Anything, mock.Anything).
					Return(&model.QuantityProposal{
						ID:          uuid.New(),
						CategoryID:  kanbanCategory.ID,
						NewQuantity: 85,
						Threshold:   model.ThresholdReorder,
					}, nil).
					Once()
			},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				require.NotNil(t, res.Proposal)
				assert.Nil(t, res.Change)
				d.kanban.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "repository create failure propagates",
			params: GoodsInParams{ItemCode: "REF-4", CategoryID: plainCategory.ID, Weight: 100},
			setup: func(d deps) {
				d.categories.
					On("ByID", mock.Anything, plainCategory.ID).
					Return(plainCategory, nil).
					Once()
				d.items.
					On("Create", mock.Anything, mock.Anything).
					Return("", errors.New("db write failed")).
					Once()
			},
			assert: func(t *testing.T, res *GoodsInResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorContains(t, err, "db write failed")
				assert.Nil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				items:      mocks.NewMockItemRepository(t),
				categories: mocks.NewMockCategoryRepository(t),
				movements:  mocks.NewMockMovementRepository(t),
				kanban:     mocks.NewMockKanban(t),
			}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := NewItemService(d.items, d.categories, d.movements, d.kanban)

			res, err := svc.GoodsIn(context.Background(), tt.params)
			tt.assert(t, res, err, d)
		})
	}
}

func TestItemList(t *testing.T) {
	t.Parallel()

	t.Run("degrades to empty on store failure", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		items.
			On("List", mock.Anything).
			Return(([]*model.Item)(nil), errors.New("db read failed")).
			Once()

		svc := NewItemService(items, mocks.NewMockCategoryRepository(t), mocks.NewMockMovementRepository(t), mocks.NewMockKanban(t))

		assert.Empty(t, svc.List(context.Background(), ""))
	})

	t.Run("status filter narrows the query", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		want := []*model.Item{{ID: gofakeit.UUID(), Status: model.StatusPending}}
		items.
			On("ListByStatus", mock.Anything, model.StatusPending).
			Return(want, nil).
			Once()

		svc := NewItemService(items, mocks.NewMockCategoryRepository(t), mocks.NewMockMovementRepository(t), mocks.NewMockKanban(t))

		assert.Equal(t, want, svc.List(context.Background(), model.StatusPending))
	})
}
