package usecase

import (
	"context"
	stderrors "errors"
	"sort"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/pkg/errors"
	"github.com/city-fighting/internal/usecase/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// metricDef - метрика графика сравнения
type metricDef struct {
	key   string
	label string
	value func(rec *domain.CityAggregateRecord) domain.Measure
}

// Жилищные метрики читаются как 0, если строки для города нет; погода и INSEE остаются unavailable.
var comparisonMetrics = []metricDef{
	{"population", "Population", func(r *domain.CityAggregateRecord) domain.Measure {
		return domain.Known(float64(r.Population))
	}},
	{"density", "Densité (hab/km²)", func(r *domain.CityAggregateRecord) domain.Measure {
		return r.Density
	}},
	{"houses_sold", "Maisons vendues", func(r *domain.CityAggregateRecord) domain.Measure {
		return domain.Known(r.Housing.HousesSold())
	}},
	{"apartments_sold", "Appartements vendus", func(r *domain.CityAggregateRecord) domain.Measure {
		return domain.Known(r.Housing.ApartmentsSold())
	}},
	{"avg_price_m2", "Prix moyen au m² (€)", func(r *domain.CityAggregateRecord) domain.Measure {
		return domain.Known(r.Housing.AvgPricePerM2())
	}},
	{"avg_surface_m2", "Surface moyenne (m²)", func(r *domain.CityAggregateRecord) domain.Measure {
		return domain.Known(r.Housing.AvgSurfaceM2())
	}},
	{"vacancy_rate", "Taux de vacance (%)", func(r *domain.CityAggregateRecord) domain.Measure {
		return domain.Known(r.Housing.VacancyRate())
	}},
	{"current_temperature", "Température actuelle (°C)", func(r *domain.CityAggregateRecord) domain.Measure {
		return r.Weather.CurrentTemperatureC
	}},
	{"median_income", "Revenu médian (€)", func(r *domain.CityAggregateRecord) domain.Measure {
		return r.SocioEconomic.MedianIncome
	}},
	{"unemployment_rate", "Taux de chômage (%)", func(r *domain.CityAggregateRecord) domain.Measure {
		return r.SocioEconomic.UnemploymentRate
	}},
}

// CompareUseCase - сравнение двух городов бок о бок
type CompareUseCase struct {
	aggregator CityAggregator
	logger     *zap.Logger
}

// NewCompareUseCase создает новый CompareUseCase
func NewCompareUseCase(aggregator CityAggregator, logger *zap.Logger) *CompareUseCase {
	return &CompareUseCase{
		aggregator: aggregator,
		logger:     logger,
	}
}

// Compare собирает оба города параллельно. Если не найден хотя бы один,
// ErrCityNotFound перечисляет все ненайденные названия.
func (uc *CompareUseCase) Compare(ctx context.Context, cityA, cityB string) (*dto.ComparisonResponse, error) {
	var (
		recA, recB *domain.CityAggregateRecord
		errA, errB error
		g          errgroup.Group
	)

	g.Go(func() error {
		recA, errA = uc.aggregator.Aggregate(ctx, cityA)
		return nil
	})
	g.Go(func() error {
		recB, errB = uc.aggregator.Aggregate(ctx, cityB)
		return nil
	})
	_ = g.Wait()

	var missing []string
	for _, r := range []struct {
		name string
		err  error
	}{{cityA, errA}, {cityB, errB}} {
		if r.err == nil {
			continue
		}
		if !stderrors.Is(r.err, errors.ErrCityNotFound) {
			return nil, r.err
		}
		missing = append(missing, r.name)
	}
	if len(missing) > 0 {
		uc.logger.Info("Comparison aborted, unknown cities", zap.Strings("cities", missing))
		return nil, notFound(missing...)
	}

	return &dto.ComparisonResponse{
		CityA:     recA,
		CityB:     recB,
		Metrics:   buildMetrics(recA, recB),
		POICounts: buildPOICounts(recA, recB),
		Forecast:  buildForecast(recA, recB),
	}, nil
}

func buildMetrics(a, b *domain.CityAggregateRecord) []dto.MetricSeries {
	series := make([]dto.MetricSeries, 0, len(comparisonMetrics))
	for _, m := range comparisonMetrics {
		series = append(series, dto.MetricSeries{
			Key:   m.key,
			Label: m.label,
			CityA: m.value(a),
			CityB: m.value(b),
		})
	}
	return series
}

func buildPOICounts(a, b *domain.CityAggregateRecord) []dto.POICount {
	countsA := domain.CountPOIsByCategory(a.POIs)
	countsB := domain.CountPOIsByCategory(b.POIs)

	out := make([]dto.POICount, 0, len(countsA))
	for _, c := range domain.POICategories() {
		out = append(out, dto.POICount{
			Category: c,
			Label:    c.Label(),
			CityA:    countsA[c],
			CityB:    countsB[c],
		})
	}
	return out
}

// buildForecast выравнивает прогнозы по дате; дня, которого нет у города, - unavailable
func buildForecast(a, b *domain.CityAggregateRecord) []dto.ForecastPoint {
	byDate := make(map[string]*dto.ForecastPoint)
	point := func(date string) *dto.ForecastPoint {
		p, ok := byDate[date]
		if !ok {
			p = &dto.ForecastPoint{Date: date, CityA: domain.Unavailable(), CityB: domain.Unavailable()}
			byDate[date] = p
		}
		return p
	}

	for _, d := range a.Weather.DailyForecast {
		point(d.Date).CityA = domain.Known(d.MaxTempC)
	}
	for _, d := range b.Weather.DailyForecast {
		point(d.Date).CityB = domain.Known(d.MaxTempC)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]dto.ForecastPoint, 0, len(dates))
	for _, date := range dates {
		out = append(out, *byDate[date])
	}
	return out
}
