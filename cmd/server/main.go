package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/globalvillage/api/internal/config"
	"github.com/globalvillage/api/internal/database"
	"github.com/globalvillage/api/internal/dataset"
	"github.com/globalvillage/api/internal/enrichment"
	"github.com/globalvillage/api/internal/migrations"
	"github.com/globalvillage/api/internal/pipeline"
	"github.com/globalvillage/api/internal/restcountries"
	"github.com/globalvillage/api/internal/server"
	"github.com/globalvillage/api/internal/worldatlas"
)

const userAgent = "globalvillage/0.1 (countries explorer)"

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

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Redis (optional) ---
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")
	}

	// --- Cultural enrichment overlay ---
	overlay := enrichment.Default()
	if cfg.EnrichmentPath != "" {
		overlay, err = enrichment.Load(cfg.EnrichmentPath)
		if err != nil {
			// Degrade to defaulted cards rather than failing startup.
			logger.Warn("cultural enrichment unavailable", "path", cfg.EnrichmentPath, "error", err)
			overlay = map[string]worldatlas.Enrichment{}
		}
	}

	// --- Country pipeline ---
	client := restcountries.NewClient(cfg.CountriesURL, userAgent, cfg.UpstreamRPS)

	var cache pipeline.Cache
	if rdb != nil {
		cache = pipeline.NewRedisCache(rdb, cfg.CacheTTL)
	} else {
		cache = pipeline.NewMemoryCache(cfg.CacheTTL)
	}

	source := pipeline.New(client, cache, overlay, logger)

	// --- Curated culture dataset ---
	cultures, err := dataset.NewStore()
	if err != nil {
		return fmt.Errorf("loading culture dataset: %w", err)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		DB:       db,
		Redis:    rdb,
		Source:   source,
		Cultures: cultures,
		Sessions: server.NewSQLiteStore(db),
		SiteDir:  cfg.SiteDir,
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
