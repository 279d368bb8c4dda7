package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/stackrow/warehouse/internal/cache"
	"github.com/stackrow/warehouse/internal/model"
)

// DefaultRecentLimit bounds the recent-activity feed.
const DefaultRecentLimit = 20

type repository struct {
	coll  *mongo.Collection
	cache *cache.Registry
}

func NewMovementRepository(collection *mongo.Collection, registry *cache.Registry) *repository {
	return &repository{coll: collection, cache: registry}
}

// Add appends a ledger entry. Entries are never updated or deleted.
func (r *repository) Add(ctx context.Context, movement *model.Movement) (string, error) {
	const op = "repository.movement.Add"

	if movement.ID == "" {
		movement.ID = uuid.NewString()
	}
	if movement.Timestamp == nil {
		movement.Timestamp = lo.ToPtr(time.Now())
	}

	if _, err := r.coll.InsertOne(ctx, EntityFromModel(movement)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	r.cache.Invalidate(cache.KeyMovements)
	return movement.ID, nil
}

// Recent returns the latest entries, newest first, served from the cache
// inside its TTL when the default limit is requested.
func (r *repository) Recent(ctx context.Context, limit int64) ([]*model.Movement, error) {
	const op = "repository.movement.Recent"

	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	if limit == DefaultRecentLimit {
		if v, ok := r.cache.Get(cache.KeyMovements); ok {
			if ms, ok := v.([]*model.Movement); ok {
				return ms, nil
			}
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	out, err := r.find(ctx, op, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	if limit == DefaultRecentLimit {
		r.cache.Set(cache.KeyMovements, out)
	}
	return out, nil
}

// ListSince returns entries at or after the given instant, used by the
// daily reporting rollup.
func (r *repository) ListSince(ctx context.Context, since time.Time) ([]*model.Movement, error) {
	const op = "repository.movement.ListSince"

	return r.find(ctx, op, bson.M{"timestamp": bson.M{"$gte": since}}, nil)
}

// WatchInvalidate follows the collection's change stream and drops the
// cached snapshot whenever another writer touches it. Blocks until ctx
// is done.
func (r *repository) WatchInvalidate(ctx context.Context) error {
	const op = "repository.movement.WatchInvalidate"

	cs, err := r.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cs.Close(context.WithoutCancel(ctx))
	}()

	for cs.Next(ctx) {
		r.cache.Invalidate(cache.KeyMovements)
	}
	if err := cs.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *repository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptionsBuilder) ([]*model.Movement, error) {
	var (
		cur *mongo.Cursor
		err error
	)
	if opts != nil {
		cur, err = r.coll.Find(ctx, filter, opts)
	} else {
		cur, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	out := make([]*model.Movement, 0)
	for cur.Next(ctx) {
		var ent MovementEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		out = append(out, EntityToModel(&ent))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}
	return out, nil
}
