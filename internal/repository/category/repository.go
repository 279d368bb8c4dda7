package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/stackrow/warehouse/internal/cache"
	"github.com/stackrow/warehouse/internal/model"
)

type repository struct {
	coll  *mongo.Collection
	cache *cache.Registry
}

func NewCategoryRepository(collection *mongo.Collection, registry *cache.Registry) *repository {
	return &repository{coll: collection, cache: registry}
}

func (r *repository) Create(ctx context.Context, category *model.Category) (string, error) {
	const op = "repository.category.Create"

	if category.KanbanRules != nil {
		if err := category.KanbanRules.Validate(); err != nil {
			return "", err
		}
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	now := time.Now()
	category.CreatedAt = &now
	category.UpdatedAt = &now

	if _, err := r.coll.InsertOne(ctx, EntityFromModel(category)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	r.cache.Invalidate(cache.KeyCategories)
	return category.ID, nil
}

// List returns every category, served from the cache inside its TTL.
func (r *repository) List(ctx context.Context) ([]*model.Category, error) {
	const op = "repository.category.List"

	if v, ok := r.cache.Get(cache.KeyCategories); ok {
		if cats, ok := v.([]*model.Category); ok {
			return cats, nil
		}
	}

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	out := make([]*model.Category, 0)
	for cur.Next(ctx) {
		var ent CategoryEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		out = append(out, EntityToModel(&ent))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	r.cache.Set(cache.KeyCategories, out)
	return out, nil
}

func (r *repository) ByID(ctx context.Context, id string) (*model.Category, error) {
	const op = "repository.category.ByID"

	var ent CategoryEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return EntityToModel(&ent), nil
}

// WatchInvalidate follows the collection's change stream and drops the
// cached snapshot whenever another writer touches it. Blocks until ctx
// is done.
func (r *repository) WatchInvalidate(ctx context.Context) error {
	const op = "repository.category.WatchInvalidate"

	cs, err := r.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cs.Close(context.WithoutCancel(ctx))
	}()

	for cs.Next(ctx) {
		r.cache.Invalidate(cache.KeyCategories)
	}
	if err := cs.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateQuantity applies a signed delta to a category's current quantity
// inside a store transaction. The quantity is re-read and range-checked
// against the transactional snapshot, so concurrent changes serialize
// and the [0, maxQuantity] rail holds under contention.
func (r *repository) UpdateQuantity(ctx context.Context, id string, delta int64) (*model.QuantityChange, error) {
	const op = "repository.category.UpdateQuantity"

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("%s: start session: %w", op, err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		var ent CategoryEntity
		if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, model.ErrCategoryNotFound
			}
			return nil, err
		}
		if ent.KanbanRules == nil {
			return nil, model.ErrNoKanbanRules
		}

		previous := ent.KanbanRules.CurrentQuantity
		current := previous + delta
		if current < 0 {
			return nil, model.ErrQuantityUnderflow
		}
		if current > ent.KanbanRules.MaxQuantity {
			return nil, model.ErrQuantityOverMax
		}

		now := time.Now()
		_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
			"kanbanRules.currentQuantity": current,
			"updatedAt":                   now,
		}})
		if err != nil {
			return nil, err
		}

		rules := EntityToModel(&ent).KanbanRules
		return &model.QuantityChange{
			CategoryID:  id,
			Previous:    previous,
			Current:     current,
			Threshold:   rules.Classify(current),
			CommittedAt: now,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	r.cache.Invalidate(cache.KeyCategories)
	return res.(*model.QuantityChange), nil
}
