package domain

import "math"

// DefaultMinPopulation - порог "города" для сравнения
const DefaultMinPopulation = 20000

// CommuneRecord - коммуна, разрешенная по названию
type CommuneRecord struct {
	Name       string  `json:"name"`
	INSEECode  string  `json:"insee_code"`
	Population int     `json:"population"`
	SurfaceKm2 Measure `json:"surface_km2"`
	Centroid   LatLon  `json:"centroid"`
}

// Density - жителей на км², округлено до 2 знаков
func (c CommuneRecord) Density() Measure {
	surface, ok := c.SurfaceKm2.Value()
	if !ok || surface <= 0 {
		return Unavailable()
	}
	return Known(math.Round(float64(c.Population)/surface*100) / 100)
}

// CommuneSummary - элемент каталога городов
type CommuneSummary struct {
	Name       string `json:"name"`
	INSEECode  string `json:"insee_code"`
	Population int    `json:"population"`
}
