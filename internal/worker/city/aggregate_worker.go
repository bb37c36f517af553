package city

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/pkg/errors"
	"github.com/city-fighting/internal/usecase"
	"github.com/city-fighting/internal/worker"
)

const retryBackoff = 500 * time.Millisecond

// AggregateWorker собирает агрегаты по запросам из stream:city:aggregate
// и публикует результат в stream:city:done. Попутно прогревает кеш агрегатов.
type AggregateWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	aggregator usecase.CityAggregator
	maxRetries int
	backoff    time.Duration
}

func NewAggregateWorker(
	streamRepo repository.StreamRepository,
	aggregator usecase.CityAggregator,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *AggregateWorker {
	return &AggregateWorker{
		BaseWorker: worker.NewBaseWorker("city-aggregate", consumerGroup, logger),
		streamRepo: streamRepo,
		aggregator: aggregator,
		maxRetries: maxRetries,
		backoff:    retryBackoff,
	}
}

// WithBackoff задает паузу между повторами (в тестах - миллисекунды)
func (w *AggregateWorker) WithBackoff(d time.Duration) *AggregateWorker {
	w.backoff = d
	return w
}

// Start запускает воркер
func (w *AggregateWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting city aggregate worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamCityAggregate, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamCityAggregate, w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("message channel closed")
			}

			if err := w.processMessage(ctx, msg); err != nil {
				// без ACK: сообщение останется в pending и будет перечитано
				logger.Error("Failed to process message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
				continue
			}

			if err := w.streamRepo.AckMessage(ctx, domain.StreamCityAggregate, w.ConsumerGroup(), msg.ID); err != nil {
				logger.Error("Failed to acknowledge message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
			}
		}
	}
}

// processMessage возвращает ошибку только если результат не удалось опубликовать
func (w *AggregateWorker) processMessage(ctx context.Context, msg domain.StreamMessage) error {
	logger := w.Logger()

	var event domain.CityAggregateEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || !event.IsValid() {
		// битое сообщение подтверждается и пропускается: ответить некому
		logger.Warn("Skipping malformed event",
			zap.String("message_id", msg.ID),
			zap.String("raw_data", msg.Data),
			zap.Error(err))
		return nil
	}

	logger.Info("Processing city aggregate request",
		zap.String("request_id", event.RequestID.String()),
		zap.String("city", event.City))

	var rec *domain.CityAggregateRecord
	err := w.Retry(ctx, w.maxRetries, w.backoff, isTransient, func() error {
		var aggErr error
		rec, aggErr = w.aggregator.Aggregate(ctx, event.City)
		return aggErr
	})

	done := &domain.CityDoneEvent{
		RequestID: event.RequestID,
		City:      event.City,
	}
	if err != nil {
		done.Error = errorCode(err)
		logger.Info("City aggregate failed",
			zap.String("request_id", event.RequestID.String()),
			zap.String("city", event.City),
			zap.String("error", done.Error))
	} else {
		done.Aggregate = rec
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamCityDone, done); err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}
	return nil
}

// isTransient - сбой сервиса коммун приходит как NotFound с причиной SourceUnavailable;
// его имеет смысл повторить, настоящий NotFound - нет.
func isTransient(err error) bool {
	return stderrors.Is(err, errors.ErrSourceUnavailable)
}

func errorCode(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return errors.ErrInternalServer.Code
}
