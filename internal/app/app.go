package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/math-s/yeargoals/internal/adapter/memory"
	postgres "github.com/math-s/yeargoals/internal/adapter/postgres"
	"github.com/math-s/yeargoals/internal/adapter/postgres/item"
	"github.com/math-s/yeargoals/internal/adapter/provider/googlebooks"
	"github.com/math-s/yeargoals/internal/config"
	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
	"github.com/math-s/yeargoals/internal/service/action"
	"github.com/math-s/yeargoals/internal/service/goal"
	"github.com/math-s/yeargoals/internal/service/library"
	"github.com/math-s/yeargoals/internal/service/stats"
	"github.com/math-s/yeargoals/internal/transport/middleware"
	"github.com/math-s/yeargoals/internal/transport/rest"
)

// Store is the item store the services run on, plus a liveness probe.
type Store interface {
	kv.Store
	Ping(ctx context.Context) error
}

// Run is the application entry point. It loads configuration, opens the
// configured store, wires the services and serves HTTP until ctx is done.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("owner", cfg.Owner.Label),
	)

	store, closeStore, err := OpenStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	handler, stop := NewHandler(cfg, store, logger)
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// OpenStore returns the store selected by cfg.Driver and a function that
// releases it. The postgres driver applies pending migrations first when
// MigrateOnStart is set.
func OpenStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.New(), func() {}, nil

	case config.DriverPostgres:
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(ctx, cfg.DSN, logger); err != nil {
				return nil, nil, err
			}
		}

		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return item.New(pool, logger), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NewHandler builds the services over store and returns the fully wrapped
// HTTP handler with a function releasing its background resources.
func NewHandler(cfg *config.Config, store Store, logger *slog.Logger) (http.Handler, func()) {
	clock := domain.SystemClock{}
	owner := cfg.Owner.Key()

	books := googlebooks.NewProvider(googlebooks.Config{
		BaseURL:   cfg.Books.BaseURL,
		APIKey:    cfg.Books.APIKey,
		UserAgent: cfg.Books.UserAgent,
		Timeout:   cfg.Books.Timeout,
	}, logger)

	librarySvc := library.NewService(logger, store, books, owner, clock)
	actionSvc := action.NewService(logger, store, librarySvc, action.Config{Owner: owner, Clock: clock})
	goalSvc := goal.NewService(logger, store, owner, clock)
	statsSvc := stats.NewService(logger, store, owner)

	router := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(store, BuildVersion()),
		Actions: rest.NewActionHandler(actionSvc, logger),
		Goals:   rest.NewGoalHandler(goalSvc, logger),
		Stats:   rest.NewStatsHandler(statsSvc, logger),
		Books:   rest.NewBookHandler(librarySvc, logger),
	})

	var (
		limit middleware.Middleware
		stop  = func() {}
	)
	if cfg.RateLimit.PerMinute > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		limit = rl.Limit(cfg.RateLimit.PerMinute)
		stop = rl.Stop
	}

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limit,
		middleware.AdminToken(cfg.Auth.AdminToken, rest.HealthPaths...),
	)

	return chain(router), stop
}
