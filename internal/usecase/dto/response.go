package dto

import "github.com/city-fighting/internal/domain"

// CityResponse - агрегат города
type CityResponse struct {
	City *domain.CityAggregateRecord `json:"city"`
}

// CitiesResponse - каталог городов для выбора
type CitiesResponse struct {
	Cities []domain.CommuneSummary `json:"cities"`
	Total  int                     `json:"total"`
}

// MetricSeries - одна метрика для графика сравнения
type MetricSeries struct {
	Key   string         `json:"key"`
	Label string         `json:"label"`
	CityA domain.Measure `json:"city_a"`
	CityB domain.Measure `json:"city_b"`
}

// POICount - число точек интереса категории в каждом городе
type POICount struct {
	Category domain.POICategory `json:"category"`
	Label    string             `json:"label"`
	CityA    int                `json:"city_a"`
	CityB    int                `json:"city_b"`
}

// ForecastPoint - максимальная температура за день в обоих городах
type ForecastPoint struct {
	Date  string         `json:"date"`
	CityA domain.Measure `json:"city_a"`
	CityB domain.Measure `json:"city_b"`
}

// ComparisonResponse - сравнение двух городов
type ComparisonResponse struct {
	CityA     *domain.CityAggregateRecord `json:"city_a"`
	CityB     *domain.CityAggregateRecord `json:"city_b"`
	Metrics   []MetricSeries              `json:"metrics"`
	POICounts []POICount                  `json:"poi_counts"`
	Forecast  []ForecastPoint             `json:"forecast"`
}

// CacheClearResponse - результат очистки кеша
type CacheClearResponse struct {
	Removed int `json:"removed"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status      string               `json:"status"`
	Cache       string               `json:"cache"`
	CacheStatus string               `json:"cache_status"`
	Housing     domain.HousingStatus `json:"housing"`
}
