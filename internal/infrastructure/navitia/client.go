package navitia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/infrastructure/apiclient"
	"github.com/city-fighting/internal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// navitiaTimeLayout - формат дат Navitia (локальное время сети)
const navitiaTimeLayout = "20060102T150405"

type client struct {
	api           *apiclient.Client
	maxStops      int
	maxDepartures int
	radiusM       int
	logger        *zap.Logger
}

// NewNavitiaClient создает клиент Navitia. Без токена запросы не выполняются.
func NewNavitiaClient(cfg *config.NavitiaConfig, logger *zap.Logger) repository.TransitRepository {
	return &client{
		api:           apiclient.New("navitia", cfg.BaseURL, cfg.Token, cfg.Timeout, logger),
		maxStops:      cfg.MaxStops,
		maxDepartures: cfg.MaxDepartures,
		radiusM:       cfg.RadiusM,
		logger:        logger,
	}
}

type placesNearbyResponse struct {
	PlacesNearby []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		EmbeddedType string `json:"embedded_type"`
		StopArea     *struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"stop_area"`
	} `json:"places_nearby"`
}

type departuresResponse struct {
	Departures []struct {
		DisplayInformations struct {
			CommercialMode string `json:"commercial_mode"`
			Label          string `json:"label"`
		} `json:"display_informations"`
		StopDateTime struct {
			DepartureDateTime string `json:"departure_date_time"`
		} `json:"stop_date_time"`
	} `json:"departures"`
}

type stopArea struct {
	id   string
	name string
}

// GetDepartures возвращает ближайшие отправления с остановок вокруг точки.
// Остановки опрашиваются параллельно, порядок результата - порядок остановок.
func (c *client) GetDepartures(ctx context.Context, point domain.LatLon) ([]domain.TransitDeparture, error) {
	if !c.api.HasToken() {
		return []domain.TransitDeparture{}, errors.ErrConfigurationMissing.WithDetails(map[string]interface{}{
			"source": c.api.Source(),
			"env":    "NAVITIA_TOKEN",
		})
	}

	stops, err := c.nearbyStops(ctx, point)
	if err != nil {
		return []domain.TransitDeparture{}, err
	}

	perStop := make([][]domain.TransitDeparture, len(stops))
	g, gctx := errgroup.WithContext(ctx)
	if c.maxStops > 0 {
		g.SetLimit(c.maxStops)
	}
	for i, stop := range stops {
		g.Go(func() error {
			deps, err := c.departures(gctx, stop)
			if err != nil {
				return err
			}
			perStop[i] = deps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return []domain.TransitDeparture{}, err
	}

	result := make([]domain.TransitDeparture, 0, len(stops)*c.maxDepartures)
	for _, deps := range perStop {
		result = append(result, deps...)
	}
	return result, nil
}

func (c *client) nearbyStops(ctx context.Context, point domain.LatLon) ([]stopArea, error) {
	query := url.Values{}
	query.Set("type[]", "stop_area")
	query.Set("count", strconv.Itoa(c.maxStops))
	query.Set("distance", strconv.Itoa(c.radiusM))

	coord := fmt.Sprintf("%s;%s",
		strconv.FormatFloat(point.Lon, 'f', -1, 64),
		strconv.FormatFloat(point.Lat, 'f', -1, 64))

	var resp placesNearbyResponse
	if err := c.api.GetJSON(ctx, c.api.URL("/coord/"+coord+"/places_nearby", query), &resp); err != nil {
		return nil, err
	}

	stops := make([]stopArea, 0, len(resp.PlacesNearby))
	for _, p := range resp.PlacesNearby {
		if p.EmbeddedType != "" && p.EmbeddedType != "stop_area" {
			continue
		}
		s := stopArea{id: p.ID, name: p.Name}
		if p.StopArea != nil {
			if p.StopArea.ID != "" {
				s.id = p.StopArea.ID
			}
			if p.StopArea.Name != "" {
				s.name = p.StopArea.Name
			}
		}
		if s.id == "" {
			continue
		}
		stops = append(stops, s)
		if len(stops) == c.maxStops {
			break
		}
	}
	return stops, nil
}

func (c *client) departures(ctx context.Context, stop stopArea) ([]domain.TransitDeparture, error) {
	query := url.Values{}
	query.Set("count", strconv.Itoa(c.maxDepartures))

	var resp departuresResponse
	path := "/stop_areas/" + url.PathEscape(stop.id) + "/departures"
	if err := c.api.GetJSON(ctx, c.api.URL(path, query), &resp); err != nil {
		return nil, err
	}

	deps := make([]domain.TransitDeparture, 0, len(resp.Departures))
	for _, d := range resp.Departures {
		t, err := time.Parse(navitiaTimeLayout, d.StopDateTime.DepartureDateTime)
		if err != nil {
			c.logger.Debug("Skipping departure with invalid time",
				zap.String("stop", stop.name),
				zap.String("value", d.StopDateTime.DepartureDateTime))
			continue
		}
		mode := strings.TrimSpace(d.DisplayInformations.CommercialMode + " " + d.DisplayInformations.Label)
		deps = append(deps, domain.NewTransitDeparture(stop.name, mode, t.Format("15:04")))
		if len(deps) == c.maxDepartures {
			break
		}
	}
	return deps, nil
}
