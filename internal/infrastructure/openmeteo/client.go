package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/infrastructure/apiclient"
	"github.com/city-fighting/internal/pkg/errors"
	"go.uber.org/zap"
)

const dailyFields = "temperature_2m_max,temperature_2m_min,precipitation_sum"

type client struct {
	api      *apiclient.Client
	timezone string
	logger   *zap.Logger
}

// NewWeatherClient создает клиент Open-Meteo
func NewWeatherClient(cfg *config.WeatherConfig, logger *zap.Logger) repository.WeatherRepository {
	return &client{
		api:      apiclient.New("open-meteo", cfg.BaseURL, "", cfg.Timeout, logger),
		timezone: cfg.Timezone,
		logger:   logger,
	}
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature *float64 `json:"temperature"`
		Windspeed   *float64 `json:"windspeed"`
	} `json:"current_weather"`
	Daily *struct {
		Time             []string   `json:"time"`
		Temperature2mMax []*float64 `json:"temperature_2m_max"`
		Temperature2mMin []*float64 `json:"temperature_2m_min"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (c *client) GetWeather(ctx context.Context, point domain.LatLon) (domain.WeatherSnapshot, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(point.Lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(point.Lon, 'f', -1, 64))
	query.Set("current_weather", "true")
	query.Set("daily", dailyFields)
	query.Set("timezone", c.timezone)

	var resp forecastResponse
	if err := c.api.GetJSON(ctx, c.api.URL("/v1/forecast", query), &resp); err != nil {
		return domain.UnavailableWeather(), err
	}

	cw := resp.CurrentWeather
	if cw == nil || cw.Temperature == nil || cw.Windspeed == nil {
		return domain.UnavailableWeather(), errors.Wrap(errors.ErrSourceUnavailable,
			fmt.Errorf("open-meteo: current_weather missing"))
	}

	forecast, err := c.dailyForecast(resp)
	if err != nil {
		return domain.UnavailableWeather(), err
	}

	return domain.WeatherSnapshot{
		CurrentTemperatureC: domain.Known(*cw.Temperature),
		WindSummary:         fmt.Sprintf("Wind: %s km/h", strconv.FormatFloat(*cw.Windspeed, 'f', -1, 64)),
		DailyForecast:       forecast,
		Available:           true,
	}, nil
}

// dailyForecast требует массивы одинаковой длины без пропусков: частичный прогноз не отдается
func (c *client) dailyForecast(resp forecastResponse) ([]domain.DailyForecast, error) {
	d := resp.Daily
	if d == nil {
		return nil, errors.Wrap(errors.ErrSourceUnavailable, fmt.Errorf("open-meteo: daily missing"))
	}

	n := len(d.Time)
	if len(d.Temperature2mMax) != n || len(d.Temperature2mMin) != n || len(d.PrecipitationSum) != n {
		return nil, errors.Wrap(errors.ErrSourceUnavailable, fmt.Errorf("open-meteo: daily arrays differ in length"))
	}

	forecast := make([]domain.DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		if d.Temperature2mMax[i] == nil || d.Temperature2mMin[i] == nil || d.PrecipitationSum[i] == nil {
			return nil, errors.Wrap(errors.ErrSourceUnavailable, fmt.Errorf("open-meteo: null value on %s", d.Time[i]))
		}
		forecast = append(forecast, domain.DailyForecast{
			Date:            d.Time[i],
			MinTempC:        *d.Temperature2mMin[i],
			MaxTempC:        *d.Temperature2mMax[i],
			PrecipitationMm: *d.PrecipitationSum[i],
		})
	}

	return forecast, nil
}
