package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stackrow/warehouse/internal/model"
	"github.com/stackrow/warehouse/internal/service/mocks"
)

func TestDashboard(t *testing.T) {
	t.Parallel()

	t.Run("counts placed items and today's movements", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		movements := mocks.NewMockMovementRepository(t)

		items.
			On("CountByStatus", mock.Anything, model.StatusPlaced).
			Return(int64(42), nil).
			Once()
		movements.
			On("ListSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
				return since.Hour() == 0 && since.Minute() == 0 && since.Second() == 0
			})).
			Return([]*model.Movement{
				{Type: model.MovementIn, Timestamp: lo.ToPtr(time.Now())},
				{Type: model.MovementIn, Timestamp: lo.ToPtr(time.Now())},
				{Type: model.MovementOut, Timestamp: lo.ToPtr(time.Now())},
			}, nil).
			Once()

		svc := NewStatsService(items, movements)

		got := svc.Dashboard(context.Background())
		require.NotNil(t, got)
		assert.Equal(t, int64(42), got.TotalItems)
		assert.Equal(t, 2, got.GoodsInToday)
		assert.Equal(t, 1, got.PicksToday)
	})

	t.Run("degrades to zeros on store failure", func(t *testing.T) {
		t.Parallel()

		items := mocks.NewMockItemRepository(t)
		movements := mocks.NewMockMovementRepository(t)

		items.
			On("CountByStatus", mock.Anything, model.StatusPlaced).
			Return(int64(0), errors.New("db read failed")).
			Once()
		movements.
			On("ListSince", mock.Anything, mock.Anything).
			Return(([]*model.Movement)(nil), errors.New("db read failed")).
			Once()

		svc := NewStatsService(items, movements)

		got := svc.Dashboard(context.Background())
		require.NotNil(t, got)
		assert.Zero(t, got.TotalItems)
		assert.Zero(t, got.GoodsInToday)
		assert.Zero(t, got.PicksToday)
	})
}

func TestRecentMovements(t *testing.T) {
	t.Parallel()

	movements := mocks.NewMockMovementRepository(t)
	movements.
		On("Recent", mock.Anything, int64(20)).
		Return(([]*model.Movement)(nil), errors.New("db read failed")).
		Once()

	svc := NewStatsService(mocks.NewMockItemRepository(t), movements)

	assert.Empty(t, svc.RecentMovements(context.Background(), 20))
}
