package domain

type DailyForecast struct {
	Date            string  `json:"date"`
	MinTempC        float64 `json:"min_temp_c"`
	MaxTempC        float64 `json:"max_temp_c"`
	PrecipitationMm float64 `json:"precipitation_mm"`
}

// WeatherSnapshot - текущая погода и дневной прогноз
type WeatherSnapshot struct {
	CurrentTemperatureC Measure         `json:"current_temperature_c"`
	WindSummary         string          `json:"wind_summary"`
	DailyForecast       []DailyForecast `json:"daily_forecast"`
	Available           bool            `json:"available"`
}

// UnavailableWeather - значение при сбое источника: без частичного прогноза
func UnavailableWeather() WeatherSnapshot {
	return WeatherSnapshot{
		CurrentTemperatureC: Unavailable(),
		WindSummary:         UnavailableText,
		DailyForecast:       []DailyForecast{},
	}
}
