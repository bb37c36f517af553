package repository

import (
	"context"

	"github.com/city-fighting/internal/domain"
)

// WeatherRepository - текущая погода и дневной прогноз по координатам
type WeatherRepository interface {
	GetWeather(ctx context.Context, point domain.LatLon) (domain.WeatherSnapshot, error)
}

// POIRepository - точки интереса вокруг центра коммуны
type POIRepository interface {
	GetNearby(ctx context.Context, point domain.LatLon) ([]domain.PointOfInterest, error)
}

// SocioEconomicRepository - показатели INSEE. Отсутствующий в ответе код просто не попадает в map.
type SocioEconomicRepository interface {
	GetByCodes(ctx context.Context, codes []string) (map[string]domain.SocioEconomic, error)
}

// TransitRepository - ближайшие отправления общественного транспорта
type TransitRepository interface {
	GetDepartures(ctx context.Context, point domain.LatLon) ([]domain.TransitDeparture, error)
}
