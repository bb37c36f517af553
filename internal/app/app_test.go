package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/city-fighting/internal/app"
	"github.com/city-fighting/internal/config"
)

func TestNew_MemoryCache(t *testing.T) {
	cfg := &config.Config{
		Geo:       config.GeoConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second, MinPopulation: 20000, SurfaceUnit: "km2"},
		Housing:   config.HousingConfig{Dir: t.TempDir(), FirstYear: 2020, LastYear: 2021},
		Aggregate: config.AggregateConfig{MaxParallel: 2, FetchTimeout: time.Second},
	}

	a, err := app.New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, app.CacheBackendMemory, a.CacheBackend)
	assert.NotNil(t, a.Aggregate)
	assert.NotNil(t, a.Compare)
	assert.NotNil(t, a.Catalog)

	// пустой каталог данных не мешает работе
	status := a.Housing.Preload(context.Background())
	assert.True(t, status.DatasetMissing)

	assert.NoError(t, a.CacheHealth(context.Background()))
}

func TestNew_RedisUnavailable(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
		Geo:   config.GeoConfig{SurfaceUnit: "km2"},
	}

	_, err := app.New(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "redis")
}
