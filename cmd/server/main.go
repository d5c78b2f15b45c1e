package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"vdcode/internal/config"
	"vdcode/internal/db"
	"vdcode/internal/domain"
	"vdcode/internal/logger"
	"vdcode/internal/middleware"
	"vdcode/internal/repository"
	"vdcode/internal/server"
	"vdcode/internal/service"
	"vdcode/internal/shortcode"
	"vdcode/internal/worker"
)

// storage is the repository chosen by configuration plus its liveness check
// and cleanup.
type storage struct {
	repo   repository.Repository
	health func(context.Context) error
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", logger.Error(err))
		os.Exit(1)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server error", logger.Error(err))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, "vdcode"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return logger.New(opts...)
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	// Initialize dependencies
	clock := domain.RealClock{}
	generator := service.NewSourceGenerator(shortcode.CryptoSource{})
	codeService := service.NewCodeService(store.repo, generator, clock,
		service.WithLogger(log),
		service.WithDefaults(cfg.Code.Defaults()),
	)

	sweeper := worker.NewSweeper(store.repo, clock, cfg.SweepInterval, log)
	go sweeper.Run(ctx)

	srv := server.New(server.Config{
		Port:            cfg.Port,
		ShutdownTimeout: cfg.ShutdownTimeout,
		BaseURL:         cfg.BaseURL,
		HealthCheck:     store.health,
	}, log, codeService)

	log.Info("starting server",
		slog.Int("port", cfg.Port),
		slog.String("storage", cfg.Storage),
		slog.Int("code_length", cfg.Code.Length),
	)

	return srv.Run(ctx)
}

func openStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (storage, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client, err := db.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return storage{}, fmt.Errorf("connecting to redis: %w", err)
		}
		return storage{
			repo:   repository.NewRedisRepository(client, cfg.Redis.Prefix),
			health: db.RedisHealthcheck(client),
			close: func() {
				if err := client.Close(); err != nil {
					log.Error("closing redis", logger.Error(err))
				}
			},
		}, nil

	case config.StoragePostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return storage{}, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := db.Migrate(ctx, pool, log.With(logger.Component("migrations"))); err != nil {
			pool.Close()
			return storage{}, err
		}
		return storage{
			repo:   repository.NewPostgresRepository(pool),
			health: db.PostgresHealthcheck(pool),
			close:  pool.Close,
		}, nil

	default:
		return storage{
			repo:  repository.NewMemoryRepository(),
			close: func() {},
		}, nil
	}
}
