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

	"github.com/stackrow/warehouse/internal/cache"
	"github.com/stackrow/warehouse/internal/model"
)

type repository struct {
	coll  *mongo.Collection
	cache *cache.Registry
}

func NewItemRepository(collection *mongo.Collection, registry *cache.Registry) *repository {
	return &repository{coll: collection, cache: registry}
}

func (r *repository) Create(ctx context.Context, item *model.Item) (string, error) {
	const op = "repository.item.Create"

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.LastUpdated = lo.ToPtr(time.Now())

	if _, err := r.coll.InsertOne(ctx, EntityFromModel(item)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	r.cache.Invalidate(cache.KeyItems)
	return item.ID, nil
}

// Update applies a partial update. Reaching the removed status purges the
// document; the movement ledger is the only surviving record.
func (r *repository) Update(ctx context.Context, id string, upd model.ItemUpdate) error {
	const op = "repository.item.Update"

	if upd.Status == model.StatusRemoved {
		res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if res.DeletedCount == 0 {
			return model.ErrItemNotFound
		}
		r.cache.Invalidate(cache.KeyItems)
		return nil
	}

	set := bson.M{"lastUpdated": time.Now()}
	unset := bson.M{}
	if upd.Status != "" {
		set["status"] = string(upd.Status)
	}
	if upd.ClearLocation {
		unset["location"] = ""
	} else if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.LocationVerified != nil {
		set["locationVerified"] = *upd.LocationVerified
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return model.ErrItemNotFound
	}

	r.cache.Invalidate(cache.KeyItems)
	return nil
}

func (r *repository) ByID(ctx context.Context, id string) (*model.Item, error) {
	return r.findOne(ctx, "repository.item.ByID", bson.M{"_id": id})
}

func (r *repository) BySystemCode(ctx context.Context, systemCode string) (*model.Item, error) {
	return r.findOne(ctx, "repository.item.BySystemCode", bson.M{"systemCode": systemCode})
}

func (r *repository) findOne(ctx context.Context, op string, filter bson.M) (*model.Item, error) {
	var ent ItemEntity
	err := r.coll.FindOne(ctx, filter).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return EntityToModel(&ent), nil
}

// List returns every live item, served from the cache inside its TTL.
func (r *repository) List(ctx context.Context) ([]*model.Item, error) {
	const op = "repository.item.List"

	if v, ok := r.cache.Get(cache.KeyItems); ok {
		if items, ok := v.([]*model.Item); ok {
			return items, nil
		}
	}

	items, err := r.find(ctx, op, bson.M{"status": bson.M{"$ne": string(model.StatusRemoved)}})
	if err != nil {
		return nil, err
	}

	r.cache.Set(cache.KeyItems, items)
	return items, nil
}

func (r *repository) ListByStatus(ctx context.Context, status model.ItemStatus) ([]*model.Item, error) {
	return r.find(ctx, "repository.item.ListByStatus", bson.M{"status": string(status)})
}

// ListByLocation returns placed items currently assigned to a location
// code.
func (r *repository) ListByLocation(ctx context.Context, locationCode string) ([]*model.Item, error) {
	return r.find(ctx, "repository.item.ListByLocation", bson.M{
		"status":   string(model.StatusPlaced),
		"location": locationCode,
	})
}

func (r *repository) CountByStatus(ctx context.Context, status model.ItemStatus) (int64, error) {
	const op = "repository.item.CountByStatus"

	n, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// WatchInvalidate follows the collection's change stream and drops the
// cached snapshot whenever another writer touches it. Blocks until ctx
// is done.
func (r *repository) WatchInvalidate(ctx context.Context) error {
	const op = "repository.item.WatchInvalidate"

	cs, err := r.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cs.Close(context.WithoutCancel(ctx))
	}()

	for cs.Next(ctx) {
		r.cache.Invalidate(cache.KeyItems)
	}
	if err := cs.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *repository) find(ctx context.Context, op string, filter bson.M) ([]*model.Item, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	out := make([]*model.Item, 0)
	for cur.Next(ctx) {
		var ent ItemEntity
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
