package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Cache.AggregateTTL)
	assert.Equal(t, 20000, cfg.Geo.MinPopulation)
	assert.Equal(t, "km2", cfg.Geo.SurfaceUnit)
	assert.Equal(t, 10*time.Second, cfg.Geo.Timeout)
	assert.Equal(t, 25*time.Second, cfg.Overpass.Timeout)
	assert.Equal(t, 5000, cfg.Overpass.RadiusM)
	assert.Equal(t, "Europe/Paris", cfg.Weather.Timezone)
	assert.Empty(t, cfg.Insee.Token)
	assert.Empty(t, cfg.Navitia.Token)
	assert.Equal(t, 2014, cfg.Housing.FirstYear)
	assert.Equal(t, 2023, cfg.Housing.LastYear)
	assert.Equal(t, 5, cfg.Aggregate.MaxParallel)
	assert.Equal(t, 25*time.Second, cfg.Aggregate.FetchTimeout)
	assert.Equal(t, 5*time.Second, cfg.Worker.StreamReadTimeout)
	assert.Equal(t, time.Minute, cfg.Worker.ClaimIdle)
	assert.Equal(t, int64(10000), cfg.Worker.StreamMaxLen)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CACHE_AGGREGATE_TTL", "600")
	t.Setenv("GEO_SURFACE_UNIT", "hectare")
	t.Setenv("GEO_MIN_POPULATION", "50000")
	t.Setenv("INSEE_API_TOKEN", "insee-token")
	t.Setenv("NAVITIA_TOKEN", "navitia-token")
	t.Setenv("HOUSING_DIR", "/data/housing")
	t.Setenv("HOUSING_MANIFEST", "/data/housing/manifest.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Equal(t, 10*time.Minute, cfg.Cache.AggregateTTL)
	assert.Equal(t, "hectare", cfg.Geo.SurfaceUnit)
	assert.Equal(t, 50000, cfg.Geo.MinPopulation)
	assert.Equal(t, "insee-token", cfg.Insee.Token)
	assert.Equal(t, "navitia-token", cfg.Navitia.Token)
	assert.Equal(t, "/data/housing", cfg.Housing.Dir)
	assert.Equal(t, "/data/housing/manifest.yaml", cfg.Housing.Manifest)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("surface unit", func(t *testing.T) {
		t.Setenv("GEO_SURFACE_UNIT", "acre")
		_, err := Load()
		assert.ErrorContains(t, err, "GEO_SURFACE_UNIT")
	})

	t.Run("housing years", func(t *testing.T) {
		t.Setenv("HOUSING_FIRST_YEAR", "2024")
		t.Setenv("HOUSING_LAST_YEAR", "2020")
		_, err := Load()
		assert.ErrorContains(t, err, "HOUSING_FIRST_YEAR")
	})
}

func TestLoad_NonPositiveParallelismFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AGGREGATE_MAX_PARALLEL", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Aggregate.MaxParallel)
}
