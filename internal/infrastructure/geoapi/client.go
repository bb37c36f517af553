package geoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/infrastructure/apiclient"
	"github.com/city-fighting/internal/pkg/errors"
	"github.com/city-fighting/internal/pkg/utils"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

const (
	searchFields = "nom,code,population,surface,centre"
	listFields   = "nom,code,population"
)

type client struct {
	api         *apiclient.Client
	surfaceUnit string
	logger      *zap.Logger
}

// NewGeoClient создает клиент geo.api.gouv.fr
func NewGeoClient(cfg *config.GeoConfig, logger *zap.Logger) repository.CommuneRepository {
	return &client{
		api:         apiclient.New("geo", cfg.BaseURL, "", cfg.Timeout, logger),
		surfaceUnit: cfg.SurfaceUnit,
		logger:      logger,
	}
}

type communeDTO struct {
	Nom        string     `json:"nom"`
	Code       string     `json:"code"`
	Population *int       `json:"population"`
	Surface    *float64   `json:"surface"`
	Centre     *centreDTO `json:"centre"`
}

type centreDTO struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// SearchByName возвращает кандидатов в порядке ответа сервиса
func (c *client) SearchByName(ctx context.Context, name string) ([]domain.CommuneRecord, error) {
	query := url.Values{}
	query.Set("nom", name)
	query.Set("fields", searchFields)
	query.Set("format", "json")
	query.Set("geometry", "centre")

	var items []communeDTO
	if err := c.api.GetJSON(ctx, c.api.URL("/communes", query), &items); err != nil {
		return nil, err
	}

	records := make([]domain.CommuneRecord, 0, len(items))
	for _, item := range items {
		rec, ok := c.toRecord(item)
		if !ok {
			c.logger.Debug("Skipping commune without usable code or centre",
				zap.String("name", item.Nom),
				zap.String("code", item.Code))
			continue
		}
		records = append(records, rec)
	}

	c.logger.Debug("Commune search completed",
		zap.String("query", name),
		zap.Int("candidates", len(records)))

	return records, nil
}

func (c *client) toRecord(item communeDTO) (domain.CommuneRecord, bool) {
	code, err := domain.NormalizeINSEECode(item.Code)
	if err != nil {
		return domain.CommuneRecord{}, false
	}
	if item.Centre == nil || len(item.Centre.Coordinates) < 2 {
		return domain.CommuneRecord{}, false
	}
	lon, lat := item.Centre.Coordinates[0], item.Centre.Coordinates[1]
	if !utils.ValidateCoordinates(lat, lon) {
		return domain.CommuneRecord{}, false
	}

	population := 0
	if item.Population != nil {
		population = *item.Population
	}

	return domain.CommuneRecord{
		Name:       item.Nom,
		INSEECode:  code,
		Population: population,
		SurfaceKm2: c.surface(item.Surface),
		Centroid:   domain.LatLon{Lat: lat, Lon: lon},
	}, true
}

// surface приводит поле surface к км²; неизвестная или неположительная площадь - unavailable
func (c *client) surface(raw *float64) domain.Measure {
	if raw == nil || *raw <= 0 {
		return domain.Unavailable()
	}
	if c.surfaceUnit == "hectare" {
		return domain.Known(*raw / 100)
	}
	return domain.Known(*raw)
}

// ListAll возвращает все коммуны с известным населением
func (c *client) ListAll(ctx context.Context) ([]domain.CommuneSummary, error) {
	query := url.Values{}
	query.Set("fields", listFields)
	query.Set("format", "json")

	var items []communeDTO
	if err := c.api.GetJSON(ctx, c.api.URL("/communes", query), &items); err != nil {
		return nil, err
	}

	summaries := make([]domain.CommuneSummary, 0, len(items))
	for _, item := range items {
		if item.Population == nil {
			continue
		}
		code, err := domain.NormalizeINSEECode(item.Code)
		if err != nil {
			continue
		}
		summaries = append(summaries, domain.CommuneSummary{
			Name:       item.Nom,
			INSEECode:  code,
			Population: *item.Population,
		})
	}

	return summaries, nil
}

type featureDTO struct {
	Type     string          `json:"type"`
	Geometry json.RawMessage `json:"geometry"`
}

// GetBoundary возвращает контур коммуны: кольца полигона или мультиполигона в порядке источника
func (c *client) GetBoundary(ctx context.Context, inseeCode string) (domain.Boundary, error) {
	query := url.Values{}
	query.Set("format", "geojson")
	query.Set("geometry", "contour")

	var feature featureDTO
	if err := c.api.GetJSON(ctx, c.api.URL("/communes/"+url.PathEscape(inseeCode), query), &feature); err != nil {
		return domain.EmptyBoundary(), err
	}
	if len(feature.Geometry) == 0 {
		return domain.EmptyBoundary(), errors.Wrap(errors.ErrSourceUnavailable,
			fmt.Errorf("geo: feature %s has no geometry", inseeCode))
	}

	var g geom.T
	if err := geojson.Unmarshal(feature.Geometry, &g); err != nil {
		return domain.EmptyBoundary(), errors.Wrap(errors.ErrSourceUnavailable,
			fmt.Errorf("geo: failed to decode contour: %w", err))
	}

	return boundaryFromGeometry(g)
}

func boundaryFromGeometry(g geom.T) (domain.Boundary, error) {
	boundary := domain.EmptyBoundary()

	switch shape := g.(type) {
	case *geom.Polygon:
		boundary.Rings = append(boundary.Rings, ringsOf(shape.Coords())...)
	case *geom.MultiPolygon:
		for _, polygon := range shape.Coords() {
			boundary.Rings = append(boundary.Rings, ringsOf(polygon)...)
		}
	default:
		return boundary, errors.Wrap(errors.ErrSourceUnavailable,
			fmt.Errorf("geo: unsupported contour geometry %T", g))
	}

	return boundary, nil
}

func ringsOf(rings [][]geom.Coord) [][]domain.LatLon {
	out := make([][]domain.LatLon, 0, len(rings))
	for _, ring := range rings {
		points := make([]domain.LatLon, 0, len(ring))
		for _, coord := range ring {
			points = append(points, domain.LatLon{Lat: coord.Y(), Lon: coord.X()})
		}
		out = append(out, points)
	}
	return out
}
