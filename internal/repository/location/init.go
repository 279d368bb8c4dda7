package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/stackrow/warehouse/internal/model"
)

type BatchCreator interface {
	CreateBatch(ctx context.Context, locations []*model.Location) error
}

// LocationsBootstrap seeds a starter layout: rows A to C, three bays per
// row, ground level plus three shelf levels. Capacity per level follows
// the standard rack rating.
func LocationsBootstrap(ctx context.Context, c BatchCreator) error {
	now := time.Now()

	rows := []string{"A", "B", "C"}
	levels := []string{model.GroundLevel, "1", "2", "3"}

	locations := make([]*model.Location, 0, len(rows)*3*len(levels))
	for _, row := range rows {
		for bay := 1; bay <= 3; bay++ {
			for _, level := range levels {
				loc := &model.Location{
					ID:            uuid.NewString(),
					Code:          fmt.Sprintf("%s%02d-%s-1", row, bay, level),
					Row:           row,
					Bay:           fmt.Sprintf("%02d", bay),
					Level:         level,
					Position:      "1",
					MaxWeight:     model.LevelMaxWeight(level, 0),
					CurrentWeight: 0,
					Available:     true,
					Verified:      true,
					LastUpdated:   lo.ToPtr(now),
				}
				if loc.IsGround() {
					loc.StackedItems = []string{}
				}
				locations = append(locations, loc)
			}
		}
	}

	return c.CreateBatch(ctx, locations)
}
