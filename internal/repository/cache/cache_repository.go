package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// scanBatch - размер страницы SCAN при очистке
const scanBatch = 100

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, errors.Wrap(errors.ErrCacheError, fmt.Errorf("cache get: %w", err))
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return errors.Wrap(errors.ErrCacheError, fmt.Errorf("cache set: %w", err))
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return errors.Wrap(errors.ErrCacheError, fmt.Errorf("cache delete: %w", err))
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, errors.Wrap(errors.ErrCacheError, fmt.Errorf("cache exists: %w", err))
	}

	return val > 0, nil
}

func (r *cacheRepository) GetAggregate(ctx context.Context, cityKey string) (*domain.CityAggregateRecord, error) {
	return getAggregate(ctx, r, cityKey)
}

func (r *cacheRepository) SetAggregate(ctx context.Context, cityKey string, rec *domain.CityAggregateRecord, ttl time.Duration) error {
	return setAggregate(ctx, r, cityKey, rec, ttl)
}

func (r *cacheRepository) DeleteAggregate(ctx context.Context, cityKey string) error {
	return r.Delete(ctx, aggregateKey(cityKey))
}

// ClearAggregates удаляет ключи агрегатов постранично через SCAN
func (r *cacheRepository) ClearAggregates(ctx context.Context) (int, error) {
	removed := 0
	iter := r.client.Scan(ctx, 0, aggregateKeyPrefix+"*", scanBatch).Iterator()

	batch := make([]string, 0, scanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := r.client.Del(ctx, batch...).Result()
		if err != nil {
			return err
		}
		removed += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return removed, errors.Wrap(errors.ErrCacheError, fmt.Errorf("cache clear: %w", err))
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, errors.Wrap(errors.ErrCacheError, fmt.Errorf("cache scan: %w", err))
	}
	if err := flush(); err != nil {
		return removed, errors.Wrap(errors.ErrCacheError, fmt.Errorf("cache clear: %w", err))
	}

	r.logger.Info("Aggregate cache cleared", zap.Int("removed", removed))
	return removed, nil
}
