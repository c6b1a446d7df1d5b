// Package initializer wires the process-wide dependencies at startup: the
// logger, the rate cache (in-memory or Redis), the upstream provider, the
// fetcher and the conversion service. Nothing here is a hidden singleton;
// everything is constructed once and handed to the web layer explicitly.
package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	infracache "github.com/moneydash/fx/infra/cache"
	"github.com/moneydash/fx/infra/provider/exchangerateapi"
	infrasettings "github.com/moneydash/fx/infra/settings"
	"github.com/moneydash/fx/pkg/cache"
	"github.com/moneydash/fx/pkg/config"
	"github.com/moneydash/fx/pkg/currency"
	"github.com/moneydash/fx/pkg/exchange"
	"github.com/moneydash/fx/pkg/service/conversion"
	"github.com/moneydash/fx/pkg/settings"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Deps holds every dependency the application needs at runtime.
type Deps struct {
	Logger     *slog.Logger
	Registry   *currency.Registry
	RateCache  exchange.RateCache
	Fetcher    *exchange.Fetcher
	Conversion *conversion.Service
	Settings   settings.Store
}

// Initialize constructs all dependencies from config.
func Initialize(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)
	registry := currency.NewRegistry()

	rateCache, err := buildRateCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	rateProvider := exchangerateapi.New(cfg.Provider, logger)
	fetcher := exchange.NewFetcher(rateProvider, rateCache, cfg.Cache.TTL, logger)
	conversionSvc := conversion.New(fetcher, registry, logger)

	store, err := buildSettingsStore(cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	return &Deps{
		Logger:     logger,
		Registry:   registry,
		RateCache:  rateCache,
		Fetcher:    fetcher,
		Conversion: conversionSvc,
		Settings:   store,
	}, nil
}

// buildRateCache picks the Redis cache when a URL is configured, otherwise
// the in-process bounded TTL cache.
func buildRateCache(cfg *config.Cache, logger *slog.Logger) (exchange.RateCache, error) {
	if cfg == nil {
		return cache.New[exchange.Rate](cache.DefaultCapacity), nil
	}
	if cfg.RedisURL == "" {
		logger.Info("using in-memory rate cache",
			"capacity", cfg.Capacity, "ttl", cfg.TTL)
		return cache.New[exchange.Rate](cfg.Capacity), nil
	}

	redisCache, err := infracache.NewRedisRateCache(cfg.RedisURL, cfg.Prefix, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build redis rate cache: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	logger.Info("using redis rate cache", "prefix", cfg.Prefix, "ttl", cfg.TTL)
	return redisCache, nil
}

// buildSettingsStore connects the gorm-backed settings store when a
// database is configured. Without one, the web layer falls back to the
// default reporting currency.
func buildSettingsStore(cfg *config.DB, logger *slog.Logger) (settings.Store, error) {
	if cfg == nil || cfg.Url == "" {
		logger.Warn("no database configured, reporting currency defaults to " +
			currency.DefaultCode.String())
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return infrasettings.New(db), nil
}
