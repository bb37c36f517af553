package cache

import (
	"context"
	"testing"
	"time"

	"github.com/city-fighting/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleAggregate() *domain.CityAggregateRecord {
	return domain.NewCityAggregateRecord(
		domain.CommuneRecord{
			Name:       "Lyon",
			INSEECode:  "69123",
			Population: 516092,
			SurfaceKm2: domain.Known(4780),
			Centroid:   domain.LatLon{Lat: 45.758, Lon: 4.8351},
		},
		domain.UnavailableWeather(),
		[]domain.PointOfInterest{{Name: "unnamed", Category: domain.POICategoryPark}},
		&domain.HousingRecord{INSEECode: "69123", Year: 2023, Values: map[string]float64{"NbMaisons": 120}},
		domain.UnavailableSocioEconomic(),
		domain.Boundary{Rings: [][]domain.LatLon{{{Lat: 1, Lon: 2}}}},
		nil,
		map[string]domain.SourceStatus{domain.SourceWeather: domain.SourceStatusUnavailable},
	)
}

func TestMemoryRepository_Aggregate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())

	got, err := repo.GetAggregate(ctx, "lyon")
	require.NoError(t, err)
	assert.Nil(t, got)

	rec := sampleAggregate()
	require.NoError(t, repo.SetAggregate(ctx, "lyon", rec, 0))

	got, err = repo.GetAggregate(ctx, "lyon")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// каждое чтение отдает независимую копию
	got.Housing.Values["NbMaisons"] = 1
	again, err := repo.GetAggregate(ctx, "lyon")
	require.NoError(t, err)
	assert.Equal(t, 120.0, again.Housing.HousesSold())

	require.NoError(t, repo.DeleteAggregate(ctx, "lyon"))
	got, err = repo.GetAggregate(ctx, "lyon")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryRepository_TTL(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop()).(*memoryRepository)

	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, repo.Set(ctx, "forever", []byte("v"), 0))

	now = now.Add(2 * time.Minute)

	val, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)

	exists, err := repo.Exists(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryRepository_ClearAggregates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())

	require.NoError(t, repo.SetAggregate(ctx, "lyon", sampleAggregate(), 0))
	require.NoError(t, repo.SetAggregate(ctx, "paris", sampleAggregate(), 0))
	require.NoError(t, repo.Set(ctx, "other", []byte("x"), 0))

	removed, err := repo.ClearAggregates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	exists, err := repo.Exists(ctx, "other")
	require.NoError(t, err)
	assert.True(t, exists)
}
