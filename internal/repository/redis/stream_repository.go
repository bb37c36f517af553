package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// readBatch - сколько сообщений забирается одним XREADGROUP
	readBatch = 10
	// defaultBlock - блокировка XREADGROUP, если не задана
	defaultBlock = time.Second
	// defaultClaimIdle - через сколько неподтвержденное сообщение забирается повторно
	defaultClaimIdle = time.Minute
	// defaultMaxLen - приблизительный предел длины стрима при публикации
	defaultMaxLen = 10000
)

type streamRepository struct {
	client    *redis.Client
	block     time.Duration
	claimIdle time.Duration
	maxLen    int64
	logger    *zap.Logger
}

// Option настраивает StreamRepository
type Option func(*streamRepository)

// WithClaimIdle задает простой, после которого зависшие в PEL сообщения
// перечитываются через XAUTOCLAIM. 0 отключает перечитывание.
func WithClaimIdle(d time.Duration) Option {
	return func(r *streamRepository) { r.claimIdle = d }
}

// WithMaxLen задает MAXLEN ~ для XADD. 0 - без ограничения.
func WithMaxLen(n int64) Option {
	return func(r *streamRepository) { r.maxLen = n }
}

// NewStreamRepository создает StreamRepository поверх отдельного клиента стримов.
// block - сколько XREADGROUP ждет новых сообщений (0 - одна секунда).
func NewStreamRepository(client *redis.Client, block time.Duration, logger *zap.Logger, opts ...Option) repository.StreamRepository {
	if block <= 0 {
		block = defaultBlock
	}
	r := &streamRepository{
		client:    client,
		block:     block,
		claimIdle: defaultClaimIdle,
		maxLen:    defaultMaxLen,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateConsumerGroup создает группу с позиции "$"; стрим создается при необходимости
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает новые сообщения группы и периодически забирает
// зависшие чужие (или свои) сообщения через XAUTOCLAIM.
// Канал закрывается при отмене ctx.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	c := &streamConsumer{
		repo:     r,
		stream:   stream,
		group:    group,
		consumer: consumer,
		out:      make(chan domain.StreamMessage, readBatch),
		logger:   r.logger.With(zap.String("stream", stream), zap.String("consumer", consumer)),
	}
	go c.run(ctx)
	return c.out, nil
}

type streamConsumer struct {
	repo      *streamRepository
	stream    string
	group     string
	consumer  string
	out       chan domain.StreamMessage
	lastClaim time.Time
	logger    *zap.Logger
}

func (c *streamConsumer) run(ctx context.Context) {
	defer close(c.out)

	for {
		if ctx.Err() != nil {
			c.logger.Info("Stream consumer stopped")
			return
		}

		if c.claimDue() {
			claimed, err := c.claim(ctx)
			if err != nil && ctx.Err() == nil {
				c.logger.Warn("Failed to claim pending messages", zap.Error(err))
			}
			if !c.deliver(ctx, claimed) {
				return
			}
		}

		msgs, err := c.read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("Failed to read from stream", zap.Error(err))
			select {
			case <-time.After(c.repo.block):
			case <-ctx.Done():
				return
			}
			continue
		}
		if !c.deliver(ctx, msgs) {
			return
		}
	}
}

func (c *streamConsumer) claimDue() bool {
	return c.repo.claimIdle > 0 && time.Since(c.lastClaim) >= c.repo.claimIdle
}

func (c *streamConsumer) claim(ctx context.Context) ([]redis.XMessage, error) {
	c.lastClaim = time.Now()

	msgs, _, err := c.repo.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   c.stream,
		Group:    c.group,
		Consumer: c.consumer,
		MinIdle:  c.repo.claimIdle,
		Start:    "0-0",
		Count:    readBatch,
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(msgs) > 0 {
		c.logger.Info("Claimed pending messages", zap.Int("count", len(msgs)))
	}
	return msgs, nil
}

func (c *streamConsumer) read(ctx context.Context) ([]redis.XMessage, error) {
	result, err := c.repo.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  []string{c.stream, ">"},
		Count:    readBatch,
		Block:    c.repo.block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var msgs []redis.XMessage
	for _, xs := range result {
		msgs = append(msgs, xs.Messages...)
	}
	return msgs, nil
}

// deliver отдает сообщения в канал; false - ctx отменен
func (c *streamConsumer) deliver(ctx context.Context, msgs []redis.XMessage) bool {
	for _, msg := range msgs {
		data, ok := msg.Values["data"].(string)
		if !ok {
			// без поля data сообщение не обработать никогда: подтверждаем, чтобы не висело в PEL
			c.logger.Warn("Message does not contain 'data' field, acknowledging",
				zap.String("message_id", msg.ID))
			c.repo.client.XAck(ctx, c.stream, c.group, msg.ID)
			continue
		}

		select {
		case c.out <- domain.StreamMessage{ID: msg.ID, Data: data}:
			c.logger.Debug("Message sent to channel", zap.String("message_id", msg.ID))
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream публикует сообщение в стрим как JSON в поле "data"
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{"data": string(payload)},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	id, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
