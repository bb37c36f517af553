package main

// @title City Fighting API
// @version 1.0.0
// @description Сравнение французских городов по данным открытых источников.
// @description
// @description Основные возможности:
// @description - Агрегат города: погода, точки интереса, контур, показатели INSEE, транспорт, жилье
// @description - Сравнение двух городов с рядами для графиков
// @description - Каталог городов с населением выше порога
// @description - Инвалидация кеша агрегатов

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/city-fighting/docs"
	"github.com/city-fighting/internal/app"
	"github.com/city-fighting/internal/config"
	httpDelivery "github.com/city-fighting/internal/delivery/http"
	"github.com/city-fighting/internal/delivery/http/handler"
	"github.com/city-fighting/internal/pkg/logger"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting City Fighting API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Int("min_population", cfg.Geo.MinPopulation),
	)

	// 3. Wire repositories and use cases
	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Preload housing dataset so the first request does not pay for CSV parsing
	preloadCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	status := application.Housing.Preload(preloadCtx)
	cancel()
	log.Info("Housing dataset status",
		zap.Bool("dataset_missing", status.DatasetMissing),
		zap.Int("rows", status.Rows),
		zap.Ints("years", status.Years))

	// 5. Initialize HTTP Handlers
	healthHandler := handler.NewHealthHandler(application.Housing, application, application.CacheBackend)
	cityHandler := handler.NewCityHandler(application.Aggregate, application.Catalog, log)
	compareHandler := handler.NewCompareHandler(application.Compare, log)
	cacheHandler := handler.NewCacheHandler(application.Aggregate, log)

	// 6. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		healthHandler,
		cityHandler,
		compareHandler,
		cacheHandler,
	)

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
