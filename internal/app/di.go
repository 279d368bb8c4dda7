package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/stackrow/warehouse/internal/cache"
	"github.com/stackrow/warehouse/internal/closer"
	"github.com/stackrow/warehouse/internal/config"
	"github.com/stackrow/warehouse/internal/kafka"
	kafkaproducer "github.com/stackrow/warehouse/internal/kafka/producer"
	"github.com/stackrow/warehouse/internal/logger"
	categoryrepo "github.com/stackrow/warehouse/internal/repository/category"
	itemrepo "github.com/stackrow/warehouse/internal/repository/item"
	locationrepo "github.com/stackrow/warehouse/internal/repository/location"
	movementrepo "github.com/stackrow/warehouse/internal/repository/movement"
	itemsvc "github.com/stackrow/warehouse/internal/service/item"
	"github.com/stackrow/warehouse/internal/service/kanban"
	"github.com/stackrow/warehouse/internal/service/placement"
	alertproducer "github.com/stackrow/warehouse/internal/service/producer/alert"
	"github.com/stackrow/warehouse/internal/service/stats"
	"github.com/stackrow/warehouse/internal/slotting"
	httpv1 "github.com/stackrow/warehouse/internal/transport/http/warehouse/v1"
)

type LocationRepository interface {
	placement.LocationRepository
	locationrepo.BatchCreator
	WatchInvalidate(ctx context.Context) error
}

type ItemRepository interface {
	itemsvc.ItemRepository
	placement.ItemRepository
	stats.ItemRepository
	WatchInvalidate(ctx context.Context) error
}

type CategoryRepository interface {
	kanban.CategoryRepository
	itemsvc.CategoryRepository
	WatchInvalidate(ctx context.Context) error
}

type MovementRepository interface {
	kanban.MovementRepository
	stats.MovementRepository
	WatchInvalidate(ctx context.Context) error
}

type WarehouseHandler interface {
	Register(r chi.Router)
}

type di struct {
	mongo         *mongo.Client
	locationsColl *mongo.Collection
	itemsColl     *mongo.Collection
	categoryColl  *mongo.Collection
	movementsColl *mongo.Collection

	cache *cache.Registry

	locations  LocationRepository
	items      ItemRepository
	categories CategoryRepository
	movements  MovementRepository

	syncProducer  sarama.SyncProducer
	alertProducer kafka.Producer
	alertSender   kanban.AlertProducer

	placementService httpv1.PlacementService
	itemService      httpv1.ItemService
	kanbanService    httpv1.KanbanService
	statsService     httpv1.StatsService

	handler WarehouseHandler
	router  *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) Cache(_ context.Context) *cache.Registry {
	if d.cache == nil {
		d.cache = cache.NewRegistry(config.C().Cache.TTL(), cache.SystemClock())
	}

	return d.cache
}

func (d *di) LocationsCollection(ctx context.Context) *mongo.Collection {
	if d.locationsColl == nil {
		d.locationsColl = d.collection(ctx, config.C().Mongo.LocationsCollection())

		if err := ensureLocationIndexes(ctx, d.locationsColl); err != nil {
			panic(fmt.Sprintf("failed to ensure location indexes: %v\n", err))
		}
	}

	return d.locationsColl
}

func (d *di) ItemsCollection(ctx context.Context) *mongo.Collection {
	if d.itemsColl == nil {
		d.itemsColl = d.collection(ctx, config.C().Mongo.ItemsCollection())

		if err := ensureItemIndexes(ctx, d.itemsColl); err != nil {
			panic(fmt.Sprintf("failed to ensure item indexes: %v\n", err))
		}
	}

	return d.itemsColl
}

func (d *di) CategoriesCollection(ctx context.Context) *mongo.Collection {
	if d.categoryColl == nil {
		d.categoryColl = d.collection(ctx, config.C().Mongo.CategoriesCollection())
	}

	return d.categoryColl
}

func (d *di) MovementsCollection(ctx context.Context) *mongo.Collection {
	if d.movementsColl == nil {
		d.movementsColl = d.collection(ctx, config.C().Mongo.MovementsCollection())

		if err := ensureMovementIndexes(ctx, d.movementsColl); err != nil {
			panic(fmt.Sprintf("failed to ensure movement indexes: %v\n", err))
		}
	}

	return d.movementsColl
}

func (d *di) collection(ctx context.Context, name string) *mongo.Collection {
	return d.MongoDB(ctx).
		Database(config.C().Mongo.DatabaseName()).
		Collection(name)
}

func (d *di) LocationRepository(ctx context.Context) LocationRepository {
	if d.locations == nil {
		d.locations = locationrepo.NewLocationRepository(d.LocationsCollection(ctx), d.Cache(ctx))
	}

	return d.locations
}

func (d *di) ItemRepository(ctx context.Context) ItemRepository {
	if d.items == nil {
		d.items = itemrepo.NewItemRepository(d.ItemsCollection(ctx), d.Cache(ctx))
	}

	return d.items
}

func (d *di) CategoryRepository(ctx context.Context) CategoryRepository {
	if d.categories == nil {
		d.categories = categoryrepo.NewCategoryRepository(d.CategoriesCollection(ctx), d.Cache(ctx))
	}

	return d.categories
}

func (d *di) MovementRepository(ctx context.Context) MovementRepository {
	if d.movements == nil {
		d.movements = movementrepo.NewMovementRepository(d.MovementsCollection(ctx), d.Cache(ctx))
	}

	return d.movements
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) StockAlertProducer(ctx context.Context) kafka.Producer {
	if d.alertProducer == nil {
		d.alertProducer = kafkaproducer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.StockAlertTopic(),
			logger.L(),
		)
	}

	return d.alertProducer
}

func (d *di) AlertSender(ctx context.Context) kanban.AlertProducer {
	if d.alertSender == nil {
		d.alertSender = alertproducer.NewAlertProducer(d.StockAlertProducer(ctx))
	}

	return d.alertSender
}

func (d *di) PlacementService(ctx context.Context) httpv1.PlacementService {
	if d.placementService == nil {
		d.placementService = placement.NewPlacementService(
			d.LocationRepository(ctx),
			d.ItemRepository(ctx),
			d.MovementRepository(ctx),
			slotting.NewAllocator(config.C().Allocator.Weights()),
		)
	}

	return d.placementService
}

func (d *di) KanbanService(ctx context.Context) httpv1.KanbanService {
	if d.kanbanService == nil {
		d.kanbanService = kanban.NewKanbanService(
			d.CategoryRepository(ctx),
			d.MovementRepository(ctx),
			d.AlertSender(ctx),
			kanban.SystemClock(),
			config.C().Allocator.ProposalTTL(),
		)
	}

	return d.kanbanService
}

func (d *di) ItemService(ctx context.Context) httpv1.ItemService {
	if d.itemService == nil {
		d.itemService = itemsvc.NewItemService(
			d.ItemRepository(ctx),
			d.CategoryRepository(ctx),
			d.MovementRepository(ctx),
			d.KanbanService(ctx),
		)
	}

	return d.itemService
}

func (d *di) StatsService(ctx context.Context) httpv1.StatsService {
	if d.statsService == nil {
		d.statsService = stats.NewStatsService(
			d.ItemRepository(ctx),
			d.MovementRepository(ctx),
		)
	}

	return d.statsService
}

func (d *di) Handler(ctx context.Context) WarehouseHandler {
	if d.handler == nil {
		d.handler = httpv1.NewWarehouseHandler(
			d.PlacementService(ctx),
			d.ItemService(ctx),
			d.KanbanService(ctx),
			d.StatsService(ctx),
		)
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}

func ensureLocationIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "available", Value: 1}}},
		{Keys: bson.D{{Key: "level", Value: 1}}},
	}, options.CreateIndexes())

	return err
}

func ensureItemIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "systemCode", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
	}, options.CreateIndexes())

	return err
}

func ensureMovementIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}, options.CreateIndexes())

	return err
}
