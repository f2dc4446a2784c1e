package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chemtrack/chemtrack/internal/config"
	"github.com/chemtrack/chemtrack/internal/domain/chemicals"
	"github.com/chemtrack/chemtrack/internal/domain/inventory"
	"github.com/chemtrack/chemtrack/internal/domain/locations"
	"github.com/chemtrack/chemtrack/internal/domain/preferences"
	"github.com/chemtrack/chemtrack/internal/domain/reports"
	"github.com/chemtrack/chemtrack/internal/infra/cache"
	"github.com/chemtrack/chemtrack/internal/infra/db"
	httpx "github.com/chemtrack/chemtrack/internal/infra/http"
	"github.com/chemtrack/chemtrack/internal/infra/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func configPath() string {
	if p := os.Getenv("APP_CONFIG"); p != "" {
		return p
	}
	return "config/example.yaml"
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	var chemCache *cache.ChemicalCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer func() { _ = client.Close() }()
		ttl := cfg.Redis.TTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		chemCache = cache.NewChemicalCache(client, ttl, log)
		log.Info("chemical cache enabled", "addr", cfg.Redis.Addr, "ttl", ttl.String())
	}

	srv := httpx.New(cfg.HTTP.Addr, httpx.Deps{
		Log:           log,
		Inventory:     inventory.NewService(inventory.NewPgStore(pool), log),
		Notify:        inventory.NewNotifyRepo(pool),
		Chemicals:     chemicals.NewRepo(pool),
		Locations:     locations.NewRepo(pool),
		Prefs:         preferences.NewRepo(pool),
		Reports:       reports.NewRepo(pool),
		Cache:         chemCache,
		APIKey:        cfg.API.Key,
		ExposeMetrics: cfg.Metrics.Enabled,
	})
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
