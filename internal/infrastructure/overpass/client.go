package overpass

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/infrastructure/apiclient"
	"go.uber.org/zap"
)

// poiSelectors - теги узлов, которые запрашиваются у Overpass
var poiSelectors = []struct{ key, value string }{
	{"amenity", "school"},
	{"amenity", "hospital"},
	{"leisure", "park"},
	{"railway", "station"},
}

type client struct {
	api          *apiclient.Client
	radiusM      int
	queryTimeout int
	logger       *zap.Logger
}

// NewOverpassClient создает клиент Overpass API
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.POIRepository {
	return &client{
		api:          apiclient.New("overpass", cfg.BaseURL, "", cfg.Timeout, logger),
		radiusM:      cfg.RadiusM,
		queryTimeout: cfg.QueryTimeout,
		logger:       logger,
	}
}

type overpassResponse struct {
	Elements []struct {
		Type string            `json:"type"`
		ID   int64             `json:"id"`
		Lat  *float64          `json:"lat"`
		Lon  *float64          `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// BuildQuery формирует Overpass QL для узлов вокруг точки
func BuildQuery(point domain.LatLon, radiusM, timeoutSec int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n(\n", timeoutSec)
	for _, s := range poiSelectors {
		fmt.Fprintf(&b, "  node[%q=%q](around:%d,%g,%g);\n", s.key, s.value, radiusM, point.Lat, point.Lon)
	}
	b.WriteString(");\nout body;")
	return b.String()
}

// GetNearby возвращает узлы в порядке ответа; элементы без координат пропускаются
func (c *client) GetNearby(ctx context.Context, point domain.LatLon) ([]domain.PointOfInterest, error) {
	query := url.Values{}
	query.Set("data", BuildQuery(point, c.radiusM, c.queryTimeout))

	var resp overpassResponse
	if err := c.api.GetJSON(ctx, c.api.URL("", query), &resp); err != nil {
		return []domain.PointOfInterest{}, err
	}

	pois := make([]domain.PointOfInterest, 0, len(resp.Elements))
	skipped := 0
	for _, el := range resp.Elements {
		if el.Lat == nil || el.Lon == nil {
			skipped++
			continue
		}
		pois = append(pois, domain.NewPointOfInterest(el.Tags, *el.Lat, *el.Lon))
	}

	c.logger.Debug("Overpass query completed",
		zap.Int("pois", len(pois)),
		zap.Int("skipped", skipped))

	return pois, nil
}
