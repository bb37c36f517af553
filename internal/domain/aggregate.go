package domain

type SourceStatus string

const (
	SourceStatusOK            SourceStatus = "ok"
	SourceStatusUnavailable   SourceStatus = "unavailable"
	SourceStatusNotConfigured SourceStatus = "not_configured"
)

// Имена источников в CityAggregateRecord.Sources
const (
	SourceWeather       = "weather"
	SourcePOI           = "poi"
	SourceBoundary      = "boundary"
	SourceSocioEconomic = "socio_economic"
	SourceTransit       = "transit"
	SourceHousing       = "housing"
)

// CityAggregateRecord - все данные по одному городу. Собирается заново и
// после сборки не изменяется.
type CityAggregateRecord struct {
	CommuneRecord
	Density       Measure                 `json:"density"`
	Weather       WeatherSnapshot         `json:"weather"`
	POIs          []PointOfInterest       `json:"pois"`
	Housing       *HousingRecord          `json:"housing"`
	SocioEconomic SocioEconomic           `json:"socio_economic"`
	Boundary      Boundary                `json:"boundary"`
	Transit       []TransitDeparture      `json:"transit"`
	Sources       map[string]SourceStatus `json:"sources"`
}

func NewCityAggregateRecord(
	commune CommuneRecord,
	weather WeatherSnapshot,
	pois []PointOfInterest,
	housing *HousingRecord,
	socio SocioEconomic,
	boundary Boundary,
	transit []TransitDeparture,
	sources map[string]SourceStatus,
) *CityAggregateRecord {
	if pois == nil {
		pois = []PointOfInterest{}
	}
	if transit == nil {
		transit = []TransitDeparture{}
	}
	if boundary.Rings == nil {
		boundary = EmptyBoundary()
	}
	if sources == nil {
		sources = make(map[string]SourceStatus)
	}

	return &CityAggregateRecord{
		CommuneRecord: commune,
		Density:       commune.Density(),
		Weather:       weather,
		POIs:          pois,
		Housing:       housing,
		SocioEconomic: socio,
		Boundary:      boundary,
		Transit:       transit,
		Sources:       sources,
	}
}
