package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/pkg/errors"
)

// aggregateKeyPrefix - префикс ключей агрегатов городов
const aggregateKeyPrefix = "city:aggregate:"

func aggregateKey(cityKey string) string {
	return aggregateKeyPrefix + cityKey
}

type byteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Агрегат хранится как JSON: каждый Get отдает новую копию
func getAggregate(ctx context.Context, s byteStore, cityKey string) (*domain.CityAggregateRecord, error) {
	data, err := s.Get(ctx, aggregateKey(cityKey))
	if err != nil || data == nil {
		return nil, err
	}

	var rec domain.CityAggregateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCacheError, fmt.Errorf("unmarshal aggregate %q: %w", cityKey, err))
	}
	return &rec, nil
}

func setAggregate(ctx context.Context, s byteStore, cityKey string, rec *domain.CityAggregateRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(errors.ErrCacheError, fmt.Errorf("marshal aggregate %q: %w", cityKey, err))
	}
	return s.Set(ctx, aggregateKey(cityKey), data, ttl)
}
