//go:build integration

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/stackrow/warehouse/internal/cache"
	"github.com/stackrow/warehouse/internal/model"
)

const mongoImage = "mongo:8.2.3"

func setupLocationRepo(t *testing.T) *repository {
	t.Helper()
	ctx := context.Background()

	// Transactions need a replica set.
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

	coll := client.Database("warehouse-test").Collection("locations")
	return NewLocationRepository(coll, cache.NewRegistry(30*time.Second, cache.SystemClock()))
}

func TestConcurrentGroundPlacements(t *testing.T) {
	repo := setupLocationRepo(t)
	ctx := context.Background()

	loc := &model.Location{
		Code:     "A01-0-1",
		Row:      "A",
		Bay:      "01",
		Level:    model.GroundLevel,
		Position: "1",
		Verified: true,
	}
	id, err := repo.Create(ctx, loc)
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

			_, err := repo.CommitPlacement(ctx, id, 0, uuid.NewString())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, model.ErrStackFull):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, model.MaxGroundItems, succeeded)
	assert.Equal(t, attempts-model.MaxGroundItems, refused)

	got, err := repo.ByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.StackedItems, model.MaxGroundItems)
	assert.False(t, got.Available)
}

func TestConcurrentShelfPlacements(t *testing.T) {
	repo := setupLocationRepo(t)
	ctx := context.Background()

	loc := &model.Location{
		Code:      "B02-1-1",
		Row:       "B",
		Bay:       "02",
		Level:     "1",
		Position:  "1",
		MaxWeight: 1000,
		Verified:  true,
	}
	id, err := repo.Create(ctx, loc)
	require.NoError(t, err)

	const (
		attempts = 10
		weight   = 300.0
	)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := repo.CommitPlacement(ctx, id, weight, "")

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if !errors.Is(err, model.ErrWeightExceeded) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)

	got, err := repo.ByID(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 900, got.CurrentWeight, 0.001)
	assert.False(t, got.Available)
}

func TestStackedItemAddRemove(t *testing.T) {
	repo := setupLocationRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &model.Location{
		Code:     "B01-0-1",
		Row:      "B",
		Bay:      "01",
		Level:    model.GroundLevel,
		Position: "1",
		Verified: true,
	})
	require.NoError(t, err)

	got, err := repo.AddStackedItem(ctx, id, "COIL-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"COIL-1"}, got.StackedItems)

	// Duplicate refs are not stacked twice.
	got, err = repo.AddStackedItem(ctx, id, "COIL-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"COIL-1"}, got.StackedItems)

	got, err = repo.AddStackedItem(ctx, id, "COIL-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"COIL-1", "COIL-2"}, got.StackedItems)

	_, err = repo.AddStackedItem(ctx, id, "")
	assert.ErrorIs(t, err, model.ErrValidation)

	got, err = repo.RemoveStackedItem(ctx, id, "COIL-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"COIL-2"}, got.StackedItems)
	assert.True(t, got.Available)

	// Absent refs are a no-op.
	got, err = repo.RemoveStackedItem(ctx, id, "COIL-9")
	require.NoError(t, err)
	assert.Equal(t, []string{"COIL-2"}, got.StackedItems)
}

func TestRemovalRestoresAvailability(t *testing.T) {
	repo := setupLocationRepo(t)
	ctx := context.Background()

	loc := &model.Location{
		Code:      "C03-2-1",
		Row:       "C",
		Bay:       "03",
		Level:     "2",
		Position:  "1",
		MaxWeight: 1000,
		Verified:  true,
	}
	id, err := repo.Create(ctx, loc)
	require.NoError(t, err)

	_, err = repo.CommitPlacement(ctx, id, 400, "")
	require.NoError(t, err)

	got, err := repo.ByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Available)

	_, err = repo.CommitRemoval(ctx, id, 400, "")
	require.NoError(t, err)

	got, err = repo.ByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Zero(t, got.CurrentWeight)
}
