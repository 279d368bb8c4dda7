package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/stackrow/warehouse/internal/cache"
	"github.com/stackrow/warehouse/internal/model"
)

// repository is the location occupancy store: the only component allowed
// to persist changes to a location's currentWeight, stackedItems and
// availability flag. Every mutation is a read-validate-write inside one
// store transaction, so concurrent placements to the same slot cannot
// overshoot the stack cap or the weight cap.
type repository struct {
	coll  *mongo.Collection
	cache *cache.Registry
}

func NewLocationRepository(collection *mongo.Collection, registry *cache.Registry) *repository {
	return &repository{coll: collection, cache: registry}
}

// List returns every location, served from the cache inside its TTL.
func (r *repository) List(ctx context.Context) ([]*model.Location, error) {
	const op = "repository.location.List"

	if v, ok := r.cache.Get(cache.KeyLocations); ok {
		if locs, ok := v.([]*model.Location); ok {
			return locs, nil
		}
	}

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	out := make([]*model.Location, 0)
	for cur.Next(ctx) {
		var ent LocationEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		out = append(out, EntityToModel(&ent))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	r.cache.Set(cache.KeyLocations, out)
	return out, nil
}

func (r *repository) ByID(ctx context.Context, id string) (*model.Location, error) {
	const op = "repository.location.ByID"

	var ent LocationEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrLocationNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return EntityToModel(&ent), nil
}

func (r *repository) ByCode(ctx context.Context, code string) (*model.Location, error) {
	const op = "repository.location.ByCode"

	if v, ok := r.cache.Get(cache.KeyLocations); ok {
		if locs, ok := v.([]*model.Location); ok {
			if loc, found := lo.Find(locs, func(l *model.Location) bool { return l.Code == code }); found {
				return loc, nil
			}
		}
	}

	var ent LocationEntity
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrLocationNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return EntityToModel(&ent), nil
}

// Create inserts a new slot with occupancy defaults. Unknown levels keep
// the caller-supplied capacity.
func (r *repository) Create(ctx context.Context, loc *model.Location) (string, error) {
	const op = "repository.location.Create"

	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	if loc.MaxWeight == 0 {
		loc.MaxWeight = model.LevelMaxWeight(loc.Level, loc.MaxWeight)
	}
	loc.CurrentWeight = 0
	if loc.StackedItems == nil {
		loc.StackedItems = []string{}
	}
	loc.LastUpdated = lo.ToPtr(time.Now())

	if _, err := r.coll.InsertOne(ctx, EntityFromModel(loc)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	r.cache.Invalidate(cache.KeyLocations)
	return loc.ID, nil
}

// CreateBatch inserts locations in one call, used by the layout
// bootstrap.
func (r *repository) CreateBatch(ctx context.Context, locations []*model.Location) error {
	const op = "repository.location.CreateBatch"

	if len(locations) == 0 {
		return nil
	}

	docs := lo.Map(locations, func(loc *model.Location, _ int) any {
		if loc.ID == "" {
			loc.ID = uuid.NewString()
		}
		return EntityFromModel(loc)
	})

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.cache.Invalidate(cache.KeyLocations)
	return nil
}

// CommitPlacement applies a placement to a location: ground slots stack
// the item reference, shelf slots take on the weight. Capacity guards are
// re-checked against the in-transaction read; callers validate up front
// for friendlier errors, this is the backstop.
func (r *repository) CommitPlacement(ctx context.Context, locationID string, weight float64, itemRef string) (*model.Location, error) {
	const op = "repository.location.CommitPlacement"

	loc, err := r.mutate(ctx, locationID, func(loc *model.Location) error {
		if loc.IsGround() {
			return stackAdd(loc, itemRef)
		}
		if weight > 0 && loc.CurrentWeight+weight > loc.MaxWeight {
			return model.ErrWeightExceeded
		}
		loc.CurrentWeight = math.Max(0, loc.CurrentWeight+weight)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return loc, nil
}

// CommitRemoval releases a placement: ground slots drop the item
// reference (no-op when absent), shelf slots shed the weight, clamped
// at zero.
func (r *repository) CommitRemoval(ctx context.Context, locationID string, weight float64, itemRef string) (*model.Location, error) {
	const op = "repository.location.CommitRemoval"

	loc, err := r.mutate(ctx, locationID, func(loc *model.Location) error {
		if loc.IsGround() {
			stackRemove(loc, itemRef)
			return nil
		}
		loc.CurrentWeight = math.Max(0, loc.CurrentWeight-weight)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return loc, nil
}

// AddStackedItem appends an item reference to a ground stack.
func (r *repository) AddStackedItem(ctx context.Context, locationID, itemRef string) (*model.Location, error) {
	const op = "repository.location.AddStackedItem"

	loc, err := r.mutate(ctx, locationID, func(loc *model.Location) error {
		return stackAdd(loc, itemRef)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return loc, nil
}

// RemoveStackedItem drops an item reference from a ground stack; absent
// references are a no-op.
func (r *repository) RemoveStackedItem(ctx context.Context, locationID, itemRef string) (*model.Location, error) {
	const op = "repository.location.RemoveStackedItem"

	loc, err := r.mutate(ctx, locationID, func(loc *model.Location) error {
		stackRemove(loc, itemRef)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return loc, nil
}

func stackAdd(loc *model.Location, itemRef string) error {
	if !loc.IsGround() {
		return errors.Join(model.ErrValidation, errors.New("location is not ground level"))
	}
	if itemRef == "" {
		return errors.Join(model.ErrValidation, errors.New("item reference must be non-empty"))
	}
	if loc.StackCount() >= model.MaxGroundItems {
		return model.ErrStackFull
	}
	if !lo.Contains(loc.StackedItems, itemRef) {
		loc.StackedItems = append(loc.StackedItems, itemRef)
	}
	return nil
}

func stackRemove(loc *model.Location, itemRef string) {
	loc.StackedItems = lo.Filter(loc.StackedItems, func(ref string, _ int) bool {
		return ref != itemRef
	})
}

// mutate runs a single read-apply-write cycle against one location
// document inside a store transaction and invalidates the cache on
// success.
func (r *repository) mutate(ctx context.Context, locationID string, apply func(*model.Location) error) (*model.Location, error) {
	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		var ent LocationEntity
		if err := r.coll.FindOne(ctx, bson.M{"_id": locationID}).Decode(&ent); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, model.ErrLocationNotFound
			}
			return nil, err
		}

		loc := EntityToModel(&ent)
		if err := apply(loc); err != nil {
			return nil, err
		}
		loc.LastUpdated = lo.ToPtr(time.Now())
		loc.Available = loc.ComputeAvailable()

		if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": locationID}, EntityFromModel(loc)); err != nil {
			return nil, err
		}
		return loc, nil
	})
	if err != nil {
		return nil, err
	}

	r.cache.Invalidate(cache.KeyLocations)
	return res.(*model.Location), nil
}

// WatchInvalidate follows the collection's change stream and drops the
// cached snapshot whenever another writer touches it, so readers never
// exceed the TTL staleness bound. Blocks until ctx is done.
func (r *repository) WatchInvalidate(ctx context.Context) error {
	const op = "repository.location.WatchInvalidate"

	cs, err := r.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cs.Close(context.WithoutCancel(ctx))
	}()

	for cs.Next(ctx) {
		r.cache.Invalidate(cache.KeyLocations)
	}
	if err := cs.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
