package repository

import (
	"context"
	"time"

	"github.com/city-fighting/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; промах - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL (0 - без срока)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetAggregate получает агрегат города; промах - (nil, nil)
	GetAggregate(ctx context.Context, cityKey string) (*domain.CityAggregateRecord, error)

	// SetAggregate сохраняет агрегат города
	SetAggregate(ctx context.Context, cityKey string, rec *domain.CityAggregateRecord, ttl time.Duration) error

	// DeleteAggregate удаляет агрегат одного города
	DeleteAggregate(ctx context.Context, cityKey string) error

	// ClearAggregates удаляет все агрегаты и возвращает их число
	ClearAggregates(ctx context.Context) (int, error)
}
