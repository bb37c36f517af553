package geoapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain"
	apperrors "github.com/city-fighting/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const searchResponse = `[
	{"nom": "Lyon", "code": "69123", "population": 516092, "surface": 4780,
	 "centre": {"type": "Point", "coordinates": [4.8351, 45.758]}},
	{"nom": "Lyons-la-Forêt", "code": "27377", "population": 700,
	 "centre": {"type": "Point", "coordinates": [1.47, 49.39]}},
	{"nom": "Nowhere", "code": "", "population": 10},
	{"nom": "Ailleurs", "code": "01001", "population": 800,
	 "centre": {"type": "Point", "coordinates": [200, 95]}}
]`

func newTestClient(url, unit string) *client {
	cfg := &config.GeoConfig{BaseURL: url, Timeout: 5 * time.Second, SurfaceUnit: unit}
	return NewGeoClient(cfg, zap.NewNop()).(*client)
}

func TestClient_SearchByName(t *testing.T) {
	t.Run("decodes candidates in source order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/communes", r.URL.Path)
			assert.Equal(t, "Lyon", r.URL.Query().Get("nom"))
			assert.Equal(t, "nom,code,population,surface,centre", r.URL.Query().Get("fields"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(searchResponse))
		}))
		defer server.Close()

		records, err := newTestClient(server.URL, "km2").SearchByName(context.Background(), "Lyon")
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Lyon", records[0].Name)
		assert.Equal(t, "69123", records[0].INSEECode)
		assert.Equal(t, 516092, records[0].Population)
		assert.Equal(t, domain.Known(4780), records[0].SurfaceKm2)
		assert.Equal(t, domain.LatLon{Lat: 45.758, Lon: 4.8351}, records[0].Centroid)

		// площадь не пришла
		assert.False(t, records[1].SurfaceKm2.IsKnown())
	})

	t.Run("hectare surface converted to km2", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(searchResponse))
		}))
		defer server.Close()

		records, err := newTestClient(server.URL, "hectare").SearchByName(context.Background(), "Lyon")
		require.NoError(t, err)
		assert.Equal(t, domain.Known(47.8), records[0].SurfaceKm2)
	})

	t.Run("service failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, "km2").SearchByName(context.Background(), "Lyon")
		assert.True(t, errors.Is(err, apperrors.ErrSourceUnavailable))
	})
}

func TestClient_ListAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nom,code,population", r.URL.Query().Get("fields"))
		w.Write([]byte(`[
			{"nom": "Paris", "code": "75056", "population": 2133111},
			{"nom": "Ajaccio", "code": "2A004", "population": 71361},
			{"nom": "Ghost", "code": "99999"}
		]`))
	}))
	defer server.Close()

	list, err := newTestClient(server.URL, "km2").ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.CommuneSummary{Name: "Ajaccio", INSEECode: "2A004", Population: 71361}, list[1])
}

func TestClient_GetBoundary(t *testing.T) {
	t.Run("polygon", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/communes/69123", r.URL.Path)
			assert.Equal(t, "contour", r.URL.Query().Get("geometry"))
			w.Write([]byte(`{"type": "Feature", "properties": {"code": "69123"},
				"geometry": {"type": "Polygon", "coordinates": [[[4.77, 45.70], [4.90, 45.70], [4.90, 45.80], [4.77, 45.70]]]}}`))
		}))
		defer server.Close()

		boundary, err := newTestClient(server.URL, "km2").GetBoundary(context.Background(), "69123")
		require.NoError(t, err)
		require.Len(t, boundary.Rings, 1)
		assert.Len(t, boundary.Rings[0], 4)
		assert.Equal(t, domain.LatLon{Lat: 45.70, Lon: 4.77}, boundary.Rings[0][0])
	})

	t.Run("multipolygon keeps every ring", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"type": "Feature", "properties": {},
				"geometry": {"type": "MultiPolygon", "coordinates": [
					[[[0, 0], [1, 0], [1, 1], [0, 0]]],
					[[[5, 5], [6, 5], [6, 6], [5, 5]], [[5.2, 5.2], [5.4, 5.2], [5.4, 5.4], [5.2, 5.2]]]
				]}}`))
		}))
		defer server.Close()

		boundary, err := newTestClient(server.URL, "km2").GetBoundary(context.Background(), "13055")
		require.NoError(t, err)
		assert.Len(t, boundary.Rings, 3)
		assert.Equal(t, domain.LatLon{Lat: 5, Lon: 5}, boundary.Rings[1][0])
	})

	t.Run("point geometry rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 2]}}`))
		}))
		defer server.Close()

		boundary, err := newTestClient(server.URL, "km2").GetBoundary(context.Background(), "13055")
		assert.True(t, errors.Is(err, apperrors.ErrSourceUnavailable))
		assert.True(t, boundary.IsEmpty())
	})
}
