package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/city-fighting/internal/domain"
)

// MockCommuneRepository is a mock of CommuneRepository
type MockCommuneRepository struct {
	mock.Mock
}

func (m *MockCommuneRepository) SearchByName(ctx context.Context, name string) ([]domain.CommuneRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommuneRecord), args.Error(1)
}

func (m *MockCommuneRepository) ListAll(ctx context.Context) ([]domain.CommuneSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommuneSummary), args.Error(1)
}

func (m *MockCommuneRepository) GetBoundary(ctx context.Context, inseeCode string) (domain.Boundary, error) {
	args := m.Called(ctx, inseeCode)
	return args.Get(0).(domain.Boundary), args.Error(1)
}

// MockWeatherRepository is a mock of WeatherRepository
type MockWeatherRepository struct {
	mock.Mock
}

func (m *MockWeatherRepository) GetWeather(ctx context.Context, point domain.LatLon) (domain.WeatherSnapshot, error) {
	args := m.Called(ctx, point)
	return args.Get(0).(domain.WeatherSnapshot), args.Error(1)
}

// MockPOIRepository is a mock of POIRepository
type MockPOIRepository struct {
	mock.Mock
}

func (m *MockPOIRepository) GetNearby(ctx context.Context, point domain.LatLon) ([]domain.PointOfInterest, error) {
	args := m.Called(ctx, point)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PointOfInterest), args.Error(1)
}

// MockSocioEconomicRepository is a mock of SocioEconomicRepository
type MockSocioEconomicRepository struct {
	mock.Mock
}

func (m *MockSocioEconomicRepository) GetByCodes(ctx context.Context, codes []string) (map[string]domain.SocioEconomic, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.SocioEconomic), args.Error(1)
}

// MockTransitRepository is a mock of TransitRepository
type MockTransitRepository struct {
	mock.Mock
}

func (m *MockTransitRepository) GetDepartures(ctx context.Context, point domain.LatLon) ([]domain.TransitDeparture, error) {
	args := m.Called(ctx, point)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransitDeparture), args.Error(1)
}

// MockHousingRepository is a mock of HousingRepository
type MockHousingRepository struct {
	mock.Mock
}

func (m *MockHousingRepository) Table(ctx context.Context) (*domain.HousingTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HousingTable), args.Error(1)
}

func (m *MockHousingRepository) Status() domain.HousingStatus {
	args := m.Called()
	return args.Get(0).(domain.HousingStatus)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetAggregate(ctx context.Context, cityKey string) (*domain.CityAggregateRecord, error) {
	args := m.Called(ctx, cityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CityAggregateRecord), args.Error(1)
}

func (m *MockCacheRepository) SetAggregate(ctx context.Context, cityKey string, rec *domain.CityAggregateRecord, ttl time.Duration) error {
	args := m.Called(ctx, cityKey, rec, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteAggregate(ctx context.Context, cityKey string) error {
	args := m.Called(ctx, cityKey)
	return args.Error(0)
}

func (m *MockCacheRepository) ClearAggregates(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockCityAggregator is a mock of CityAggregator
type MockCityAggregator struct {
	mock.Mock
}

func (m *MockCityAggregator) Aggregate(ctx context.Context, cityName string) (*domain.CityAggregateRecord, error) {
	args := m.Called(ctx, cityName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CityAggregateRecord), args.Error(1)
}
