package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxParallel  = 5
	defaultFetchTimeout = 25 * time.Second
)

// CityAggregator - сборка агрегата по названию города
type CityAggregator interface {
	Aggregate(ctx context.Context, cityName string) (*domain.CityAggregateRecord, error)
}

var _ CityAggregator = (*AggregateUseCase)(nil)

// AggregateUseCase - конвейер: кеш → разрешение → параллельная загрузка → жилье → кеш
type AggregateUseCase struct {
	resolver     *ResolverUseCase
	fetchers     *Fetchers
	housingRepo  repository.HousingRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
	maxParallel  int
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// NewAggregateUseCase создает новый AggregateUseCase
func NewAggregateUseCase(
	resolver *ResolverUseCase,
	fetchers *Fetchers,
	housingRepo repository.HousingRepository,
	cacheRepo repository.CacheRepository,
	cfg *config.AggregateConfig,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *AggregateUseCase {
	maxParallel, fetchTimeout := cfg.MaxParallel, cfg.FetchTimeout
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}

	return &AggregateUseCase{
		resolver:     resolver,
		fetchers:     fetchers,
		housingRepo:  housingRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
		maxParallel:  maxParallel,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// Aggregate возвращает агрегат города. Единственная ошибка предметной области - ErrCityNotFound;
// сбои источников отражаются в Sources.
func (uc *AggregateUseCase) Aggregate(ctx context.Context, cityName string) (*domain.CityAggregateRecord, error) {
	rec, _, err := uc.AggregateWithCacheInfo(ctx, cityName)
	return rec, err
}

// AggregateWithCacheInfo - как Aggregate, дополнительно сообщает, взят ли результат из кеша
func (uc *AggregateUseCase) AggregateWithCacheInfo(ctx context.Context, cityName string) (*domain.CityAggregateRecord, bool, error) {
	key := domain.FoldName(cityName)
	if key == "" {
		return nil, false, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"city": "must not be empty",
		})
	}

	cached, err := uc.cacheRepo.GetAggregate(ctx, key)
	if err != nil {
		uc.logger.Warn("Aggregate cache read failed", zap.String("key", key), zap.Error(err))
	}
	if cached != nil {
		uc.logger.Debug("Aggregate served from cache", zap.String("key", key))
		return cached, true, nil
	}

	commune, err := uc.resolver.Resolve(ctx, cityName)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	rec := uc.build(ctx, commune)

	// отмена вызывающего - не сбой источников: такой агрегат не кешируется
	if ctx.Err() != nil {
		uc.logger.Info("Aggregate not cached, caller cancelled",
			zap.String("key", key), zap.Error(ctx.Err()))
	} else if err := uc.cacheRepo.SetAggregate(ctx, key, rec, uc.cacheTTL); err != nil {
		uc.logger.Warn("Aggregate cache write failed", zap.String("key", key), zap.Error(err))
	}

	uc.logger.Info("City aggregated",
		zap.String("city", commune.Name),
		zap.String("insee_code", commune.INSEECode),
		zap.Any("sources", rec.Sources),
		zap.Duration("took", time.Since(start)))

	return rec, false, nil
}

// build запускает все источники параллельно. Каждая загрузка получает свой таймаут;
// ошибки не отменяют соседей, ожидание - до завершения всех.
func (uc *AggregateUseCase) build(ctx context.Context, commune *domain.CommuneRecord) *domain.CityAggregateRecord {
	var (
		weather       domain.WeatherSnapshot
		pois          []domain.PointOfInterest
		boundary      domain.Boundary
		socio         domain.SocioEconomic
		transit       []domain.TransitDeparture
		weatherStatus domain.SourceStatus
		poiStatus     domain.SourceStatus
		boundStatus   domain.SourceStatus
		socioStatus   domain.SourceStatus
		transitStatus domain.SourceStatus
	)

	var g errgroup.Group
	g.SetLimit(uc.maxParallel)

	point, code := commune.Centroid, commune.INSEECode
	uc.spawn(ctx, &g, func(fctx context.Context) {
		weather, weatherStatus = uc.fetchers.Weather(fctx, point)
	})
	uc.spawn(ctx, &g, func(fctx context.Context) {
		pois, poiStatus = uc.fetchers.POIs(fctx, point)
	})
	uc.spawn(ctx, &g, func(fctx context.Context) {
		boundary, boundStatus = uc.fetchers.Boundary(fctx, code)
	})
	uc.spawn(ctx, &g, func(fctx context.Context) {
		socio, socioStatus = uc.fetchers.SocioEconomic(fctx, code)
	})
	uc.spawn(ctx, &g, func(fctx context.Context) {
		transit, transitStatus = uc.fetchers.Transit(fctx, point)
	})
	_ = g.Wait()

	housing, housingStatus := uc.latestHousing(ctx, code)

	return domain.NewCityAggregateRecord(*commune, weather, pois, housing, socio, boundary, transit,
		map[string]domain.SourceStatus{
			domain.SourceWeather:       weatherStatus,
			domain.SourcePOI:           poiStatus,
			domain.SourceBoundary:      boundStatus,
			domain.SourceSocioEconomic: socioStatus,
			domain.SourceTransit:       transitStatus,
			domain.SourceHousing:       housingStatus,
		})
}

func (uc *AggregateUseCase) spawn(ctx context.Context, g *errgroup.Group, fetch func(context.Context)) {
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(ctx, uc.fetchTimeout)
		defer cancel()
		fetch(fctx)
		return nil
	})
}

// latestHousing - строка последнего года для кода. Отсутствие датасета уже залогировано хранилищем.
func (uc *AggregateUseCase) latestHousing(ctx context.Context, code string) (*domain.HousingRecord, domain.SourceStatus) {
	table, err := uc.housingRepo.Table(ctx)
	if err != nil && !stderrors.Is(err, errors.ErrDatasetMissing) {
		uc.logger.Warn("Housing dataset read failed", zap.Error(err))
	}

	rec := table.Latest(code)
	if rec == nil {
		return nil, domain.SourceStatusUnavailable
	}
	return rec, domain.SourceStatusOK
}

// Invalidate удаляет агрегат города из кеша
func (uc *AggregateUseCase) Invalidate(ctx context.Context, cityName string) error {
	key := domain.FoldName(cityName)
	if key == "" {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"city": "must not be empty",
		})
	}
	if err := uc.cacheRepo.DeleteAggregate(ctx, key); err != nil {
		return err
	}
	uc.logger.Info("Aggregate invalidated", zap.String("key", key))
	return nil
}

// Clear удаляет все агрегаты и возвращает их число
func (uc *AggregateUseCase) Clear(ctx context.Context) (int, error) {
	return uc.cacheRepo.ClearAggregates(ctx)
}
