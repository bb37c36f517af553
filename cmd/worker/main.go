package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/city-fighting/internal/app"
	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/pkg/logger"
	"github.com/city-fighting/internal/repository/cache"
	redisRepo "github.com/city-fighting/internal/repository/redis"
	"github.com/city-fighting/internal/worker"
	"github.com/city-fighting/internal/worker/city"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}
	if !cfg.Redis.Enabled {
		fmt.Println("Worker consumes Redis Streams. Set REDIS_ENABLED=true.")
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting City Aggregate Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout),
		zap.Duration("claim_idle", cfg.Worker.ClaimIdle))

	// 3. Wire use cases; aggregates land in the shared Redis cache
	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("Failed to close Redis cache connection", zap.Error(err))
		}
	}()

	// 4. Dedicated stream client: XREADGROUP blocks longer than the default socket timeout
	streamClient, err := cache.NewRedisStreams(&cfg.Redis, cfg.Worker.StreamReadTimeout, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}
	defer func() {
		if err := streamClient.Close(); err != nil {
			log.Error("Failed to close Redis Streams connection", zap.Error(err))
		}
	}()
	streamRepo := redisRepo.NewStreamRepository(streamClient, cfg.Worker.StreamReadTimeout, log,
		redisRepo.WithClaimIdle(cfg.Worker.ClaimIdle),
		redisRepo.WithMaxLen(cfg.Worker.StreamMaxLen),
	)

	// 5. Initialize workers
	aggregateWorker := city.NewAggregateWorker(
		streamRepo,
		application.Aggregate,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(aggregateWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 6. Wait for a signal or for every worker to exit
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
		log.Warn("All workers exited")
	}

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
