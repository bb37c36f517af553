package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/infrastructure/geoapi"
	"github.com/city-fighting/internal/infrastructure/insee"
	"github.com/city-fighting/internal/infrastructure/navitia"
	"github.com/city-fighting/internal/infrastructure/openmeteo"
	"github.com/city-fighting/internal/infrastructure/overpass"
	"github.com/city-fighting/internal/repository/cache"
	"github.com/city-fighting/internal/repository/housing"
	"github.com/city-fighting/internal/usecase"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// App - собранные зависимости, общие для API, воркера и CLI
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Aggregate *usecase.AggregateUseCase
	Compare   *usecase.CompareUseCase
	Catalog   *usecase.CatalogUseCase
	Housing   *usecase.HousingUseCase

	CacheBackend string
	redis        *cache.Redis
}

// New собирает клиенты, хранилища и use case'ы. Redis подключается только при REDIS_ENABLED.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	cacheRepo, redisClient, backend, err := newCache(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Клиенты внешних источников
	communeRepo := geoapi.NewGeoClient(&cfg.Geo, logger)
	weatherRepo := openmeteo.NewWeatherClient(&cfg.Weather, logger)
	poiRepo := overpass.NewOverpassClient(&cfg.Overpass, logger)
	socioRepo := insee.NewInseeClient(&cfg.Insee, logger)
	transitRepo := navitia.NewNavitiaClient(&cfg.Navitia, logger)

	housingRepo := housing.NewStore(housing.NewLoader(&cfg.Housing, logger), logger)

	logger.Info("Repositories initialized",
		zap.String("cache", backend),
		zap.Bool("insee_configured", cfg.Insee.Token != ""),
		zap.Bool("navitia_configured", cfg.Navitia.Token != ""))

	resolver := usecase.NewResolverUseCase(communeRepo, cfg.Geo.MinPopulation, logger)
	fetchers := usecase.NewFetchers(weatherRepo, poiRepo, communeRepo, socioRepo, transitRepo, logger)
	aggregateUC := usecase.NewAggregateUseCase(
		resolver,
		fetchers,
		housingRepo,
		cacheRepo,
		&cfg.Aggregate,
		cfg.Cache.AggregateTTL,
		logger,
	)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Aggregate:    aggregateUC,
		Compare:      usecase.NewCompareUseCase(aggregateUC, logger),
		Catalog:      usecase.NewCatalogUseCase(communeRepo, cfg.Geo.MinPopulation, logger),
		Housing:      usecase.NewHousingUseCase(housingRepo, logger),
		CacheBackend: backend,
		redis:        redisClient,
	}, nil
}

func newCache(cfg *config.Config, logger *zap.Logger) (repository.CacheRepository, *cache.Redis, string, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryRepository(logger), nil, CacheBackendMemory, nil
	}

	redisClient, err := cache.NewRedis(&cfg.Redis, logger)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to connect to redis cache: %w", err)
	}
	return cache.NewCacheRepository(redisClient), redisClient, CacheBackendRedis, nil
}

// CacheHealth пингует Redis; кеш в памяти всегда доступен
func (a *App) CacheHealth(ctx context.Context) error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Health(ctx)
}

// Close закрывает соединение с Redis, если оно было открыто
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}
