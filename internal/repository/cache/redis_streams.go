package cache

import (
	"fmt"
	"time"

	"github.com/city-fighting/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisStreams создает отдельный клиент для чтения стримов.
// ReadTimeout должен быть больше блокировки XREADGROUP, иначе чтение обрывается по таймауту сокета.
func NewRedisStreams(cfg *config.RedisConfig, block time.Duration, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		ReadTimeout: block + 5*time.Second,
	})

	if err := ping(client); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis streams: %w", err)
	}

	logger.Info("Redis Streams connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Duration("block", block),
	)

	return client, nil
}
