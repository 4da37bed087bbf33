package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/treasurehunt/internal/config"
	"github.com/playperu/treasurehunt/internal/content"
	"github.com/playperu/treasurehunt/internal/database"
	"github.com/playperu/treasurehunt/internal/handler/health"
	"github.com/playperu/treasurehunt/internal/hunt"
	"github.com/playperu/treasurehunt/internal/migrations"
	"github.com/playperu/treasurehunt/internal/server"
	"github.com/playperu/treasurehunt/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Content ---
	table, err := loadContent(cfg.ContentPath)
	if err != nil {
		return err
	}
	logger.Info("content loaded", "version", table.Version, "locations", len(table.Locations))

	// --- Sessions ---
	checks := map[string]health.Checker{}
	var sessions store.Store[hunt.Snapshot]

	switch cfg.SessionBackend {
	case config.BackendSQLite:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()

		if err := migrations.Run(ctx, db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("connected to sqlite", "path", cfg.DBPath)
		sessions = store.NewSQL[hunt.Snapshot](db, "sessions")
		checks["sqlite"] = health.SQL(db)

	case config.BackendRedis:
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")
		sessions = store.NewRedis[hunt.Snapshot](rdb, "treasurehunt:session:", cfg.SessionTTL)
		checks["redis"] = health.Redis(rdb)

	default:
		logger.Warn("sessions are kept in memory and lost on restart")
		sessions = store.NewMemory[hunt.Snapshot]()
	}

	opts := []hunt.Option{hunt.WithNoticeTTL(cfg.NoticeTTL)}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Library:           content.NewLibrary(table),
		Sessions:          sessions,
		Broker:            server.NewBroker(),
		SessionOptions:    opts,
		Seed:              cfg.Seed,
		AdminPasswordHash: cfg.AdminPasswordHash,
		SPADir:            cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func loadContent(path string) (*hunt.Content, error) {
	if path == "" {
		c, err := content.Default()
		if err != nil {
			return nil, fmt.Errorf("loading built-in content: %w", err)
		}
		return c, nil
	}
	c, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", path, err)
	}
	return c, nil
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
