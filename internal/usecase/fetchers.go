package usecase

import (
	"context"
	stderrors "errors"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/pkg/errors"
	"go.uber.org/zap"
)

// Fetchers оборачивает внешние источники: ошибка любого из них превращается
// в пустое значение и статус источника, наружу не выходит.
type Fetchers struct {
	weatherRepo repository.WeatherRepository
	poiRepo     repository.POIRepository
	communeRepo repository.CommuneRepository
	socioRepo   repository.SocioEconomicRepository
	transitRepo repository.TransitRepository
	logger      *zap.Logger
}

// NewFetchers создает Fetchers. socioRepo и transitRepo могут быть nil - тогда источник not_configured.
func NewFetchers(
	weatherRepo repository.WeatherRepository,
	poiRepo repository.POIRepository,
	communeRepo repository.CommuneRepository,
	socioRepo repository.SocioEconomicRepository,
	transitRepo repository.TransitRepository,
	logger *zap.Logger,
) *Fetchers {
	return &Fetchers{
		weatherRepo: weatherRepo,
		poiRepo:     poiRepo,
		communeRepo: communeRepo,
		socioRepo:   socioRepo,
		transitRepo: transitRepo,
		logger:      logger,
	}
}

func (f *Fetchers) Weather(ctx context.Context, point domain.LatLon) (domain.WeatherSnapshot, domain.SourceStatus) {
	snapshot, err := f.weatherRepo.GetWeather(ctx, point)
	if err != nil {
		return domain.UnavailableWeather(), f.degrade(domain.SourceWeather, err)
	}
	if snapshot.DailyForecast == nil {
		snapshot.DailyForecast = []domain.DailyForecast{}
	}
	snapshot.Available = true
	return snapshot, domain.SourceStatusOK
}

func (f *Fetchers) POIs(ctx context.Context, point domain.LatLon) ([]domain.PointOfInterest, domain.SourceStatus) {
	pois, err := f.poiRepo.GetNearby(ctx, point)
	if err != nil {
		return []domain.PointOfInterest{}, f.degrade(domain.SourcePOI, err)
	}
	if pois == nil {
		pois = []domain.PointOfInterest{}
	}
	return pois, domain.SourceStatusOK
}

func (f *Fetchers) Boundary(ctx context.Context, inseeCode string) (domain.Boundary, domain.SourceStatus) {
	boundary, err := f.communeRepo.GetBoundary(ctx, inseeCode)
	if err != nil {
		return domain.EmptyBoundary(), f.degrade(domain.SourceBoundary, err)
	}
	return boundary, domain.SourceStatusOK
}

// SocioEconomic - код, отсутствующий в ответе, дает unavailable только для этого города
func (f *Fetchers) SocioEconomic(ctx context.Context, inseeCode string) (domain.SocioEconomic, domain.SourceStatus) {
	if f.socioRepo == nil {
		return domain.UnavailableSocioEconomic(), domain.SourceStatusNotConfigured
	}

	byCode, err := f.socioRepo.GetByCodes(ctx, []string{inseeCode})
	if err != nil {
		return domain.UnavailableSocioEconomic(), f.degrade(domain.SourceSocioEconomic, err)
	}

	indicators, ok := byCode[inseeCode]
	if !ok {
		f.logger.Debug("No socio-economic indicators for commune", zap.String("insee_code", inseeCode))
		return domain.UnavailableSocioEconomic(), domain.SourceStatusUnavailable
	}
	indicators.Available = true
	return indicators, domain.SourceStatusOK
}

func (f *Fetchers) Transit(ctx context.Context, point domain.LatLon) ([]domain.TransitDeparture, domain.SourceStatus) {
	if f.transitRepo == nil {
		return []domain.TransitDeparture{}, domain.SourceStatusNotConfigured
	}

	deps, err := f.transitRepo.GetDepartures(ctx, point)
	if err != nil {
		return []domain.TransitDeparture{}, f.degrade(domain.SourceTransit, err)
	}
	if deps == nil {
		deps = []domain.TransitDeparture{}
	}
	return deps, domain.SourceStatusOK
}

func (f *Fetchers) degrade(source string, err error) domain.SourceStatus {
	if stderrors.Is(err, errors.ErrConfigurationMissing) {
		f.logger.Debug("Source not configured", zap.String("source", source), zap.Error(err))
		return domain.SourceStatusNotConfigured
	}

	f.logger.Warn("Source unavailable, using empty value",
		zap.String("source", source),
		zap.String("code", errors.ErrSourceUnavailable.Code),
		zap.Error(err))
	return domain.SourceStatusUnavailable
}
