//go:build integration

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/stackrow/warehouse/internal/cache"
	"github.com/stackrow/warehouse/internal/model"
)

const mongoImage = "mongo:8.2.3"

func setupCategoryRepo(t *testing.T) *repository {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, mongoImage, mongodb.WithReplicaSet("rs0"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	coll := client.Database("warehouse-test").Collection("categories")
	return NewCategoryRepository(coll, cache.NewRegistry(30*time.Second, cache.SystemClock()))
}

func TestConcurrentQuantityChangesHoldRails(t *testing.T) {
	repo := setupCategoryRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &model.Category{
		Name: "Bolts",
		KanbanRules: &model.KanbanRules{
			GoodsIn:         true,
			MinQuantity:     10,
			MaxQuantity:     100,
			ReorderPoint:    20,
			ReorderQuantity: 30,
			CurrentQuantity: 30,
			FixedLocations:  []string{"C03-0-1"},
		},
	})
	require.NoError(t, err)

	const attempts = 10

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		refused   int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := repo.UpdateQuantity(ctx, id, -5)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, model.ErrQuantityUnderflow):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 30 on hand, 5 per pick: exactly six picks fit.
	assert.Equal(t, 6, succeeded)
	assert.Equal(t, attempts-6, refused)

	got, err := repo.ByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.KanbanRules)
	assert.Zero(t, got.KanbanRules.CurrentQuantity)
}

func TestQuantityChangeThresholds(t *testing.T) {
	repo := setupCategoryRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &model.Category{
		Name: "Washers",
		KanbanRules: &model.KanbanRules{
			GoodsIn:         true,
			MinQuantity:     10,
			MaxQuantity:     100,
			ReorderPoint:    20,
			ReorderQuantity: 30,
			CurrentQuantity: 25,
			FixedLocations:  []string{"A02-0-1"},
		},
	})
	require.NoError(t, err)

	change, err := repo.UpdateQuantity(ctx, id, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), change.Previous)
	assert.Equal(t, int64(15), change.Current)
	assert.Equal(t, model.ThresholdReorder, change.Threshold)

	change, err = repo.UpdateQuantity(ctx, id, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), change.Current)
	assert.Equal(t, model.ThresholdCritical, change.Threshold)

	_, err = repo.UpdateQuantity(ctx, id, 200)
	assert.ErrorIs(t, err, model.ErrQuantityOverMax)

	_, err = repo.UpdateQuantity(ctx, "missing", 1)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}
