package stats

import (
	"context"
	"time"

	"github.com/stackrow/warehouse/internal/logger"
	"github.com/stackrow/warehouse/internal/model"
)

type ItemRepository interface {
	CountByStatus(ctx context.Context, status model.ItemStatus) (int64, error)
}

type MovementRepository interface {
	Recent(ctx context.Context, limit int64) ([]*model.Movement, error)
	ListSince(ctx context.Context, since time.Time) ([]*model.Movement, error)
}

// service is the reporting rollup behind the dashboard. Every surface
// degrades to zero values on store failure; reporting never takes the
// caller down.
type service struct {
	items     ItemRepository
	movements MovementRepository
}

func NewStatsService(items ItemRepository, movements MovementRepository) *service {
	return &service{items: items, movements: movements}
}

// Dashboard returns the placed-item count and today's intake and pick
// counts, bounded at local midnight.
func (s *service) Dashboard(ctx context.Context) *model.DashboardStats {
	out := &model.DashboardStats{}

	total, err := s.items.CountByStatus(ctx, model.StatusPlaced)
	if err != nil {
		logger.Error(ctx, "count placed items", logger.ErrorF(err))
	} else {
		out.TotalItems = total
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.movements.ListSince(ctx, midnight)
	if err != nil {
		logger.Error(ctx, "list today's movements", logger.ErrorF(err))
		return out
	}
	for _, m := range today {
		switch m.Type {
		case model.MovementIn:
			out.GoodsInToday++
		case model.MovementOut:
			out.PicksToday++
		}
	}

	return out
}

// RecentMovements returns the latest ledger entries, newest first.
// Degrades to an empty list on store failure.
func (s *service) RecentMovements(ctx context.Context, limit int64) []*model.Movement {
	ms, err := s.movements.Recent(ctx, limit)
	if err != nil {
		logger.Error(ctx, "recent movements", logger.ErrorF(err))
		return []*model.Movement{}
	}
	return ms
}
