package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/stackrow/warehouse/internal/closer"
	"github.com/stackrow/warehouse/internal/config"
	"github.com/stackrow/warehouse/internal/logger"
	locationrepo "github.com/stackrow/warehouse/internal/repository/location"
	"github.com/stackrow/warehouse/internal/transport/http/health"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initLayout,
		a.initServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

// initLayout seeds the starter slot layout on first run.
func (a *app) initLayout(ctx context.Context) error {
	count, err := a.di.LocationsCollection(ctx).EstimatedDocumentCount(ctx)
	if err != nil {
		logger.Error(ctx, "failed to count locations", logger.ErrorF(err))
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info(ctx, "empty locations collection, seeding starter layout")
	if err := locationrepo.LocationsBootstrap(ctx, a.di.LocationRepository(ctx)); err != nil {
		logger.Error(ctx, "failed to seed locations", logger.ErrorF(err))
		return err
	}
	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		middleware.Recoverer,
		middleware.Logger,
	)

	a.di.Handler(ctx).Register(r)
	r.HandleFunc("/health", health.HealthCheck)

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}

	closer.AddNamed("HTTP server", func(ctx context.Context) error {
		return a.server.Shutdown(ctx)
	})
	return nil
}

func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	eg, egCtx := errgroup.WithContext(ctx)

	watchers := map[string]func(context.Context) error{
		"locations":  a.di.LocationRepository(egCtx).WatchInvalidate,
		"items":      a.di.ItemRepository(egCtx).WatchInvalidate,
		"categories": a.di.CategoryRepository(egCtx).WatchInvalidate,
		"movements":  a.di.MovementRepository(egCtx).WatchInvalidate,
	}
	for name, watch := range watchers {
		eg.Go(func() error {
			logger.Info(egCtx, "👀 change stream running", logger.String("collection", name))
			if err := watch(egCtx); err != nil {
				// Cache staleness is bounded by the TTL; a dead stream is
				// worth a log line, not a crash.
				logger.Error(egCtx, "change stream stopped",
					logger.String("collection", name),
					logger.ErrorF(err),
				)
			}
			return nil
		})
	}

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 warehouse server listening",
			logger.String("address", config.C().Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}
