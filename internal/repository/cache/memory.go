package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"go.uber.org/zap"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// memoryRepository - кеш процесса без вытеснения; ttl 0 - без срока
type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	logger  *zap.Logger
}

// NewMemoryRepository создает in-memory кеш, используемый когда Redis выключен
func NewMemoryRepository(logger *zap.Logger) repository.CacheRepository {
	return &memoryRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		logger:  logger,
	}
}

func (m *memoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || entry.expired(m.now()) {
		return nil, nil
	}

	m.logger.Debug("Cache hit", zap.String("key", key))
	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, nil
}

func (m *memoryRepository) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{data: make([]byte, len(value))}
	copy(entry.data, value)
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()

	m.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryRepository) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	return ok && !entry.expired(m.now()), nil
}

func (m *memoryRepository) GetAggregate(ctx context.Context, cityKey string) (*domain.CityAggregateRecord, error) {
	return getAggregate(ctx, m, cityKey)
}

func (m *memoryRepository) SetAggregate(ctx context.Context, cityKey string, rec *domain.CityAggregateRecord, ttl time.Duration) error {
	return setAggregate(ctx, m, cityKey, rec, ttl)
}

func (m *memoryRepository) DeleteAggregate(ctx context.Context, cityKey string) error {
	return m.Delete(ctx, aggregateKey(cityKey))
}

func (m *memoryRepository) ClearAggregates(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key := range m.entries {
		if strings.HasPrefix(key, aggregateKeyPrefix) {
			delete(m.entries, key)
			removed++
		}
	}

	m.logger.Info("Aggregate cache cleared", zap.Int("removed", removed))
	return removed, nil
}
