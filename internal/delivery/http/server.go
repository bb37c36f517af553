package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/delivery/http/handler"
	"github.com/city-fighting/internal/delivery/http/middleware"
	"github.com/city-fighting/internal/pkg/errors"
	"github.com/city-fighting/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	healthHandler  *handler.HealthHandler
	cityHandler    *handler.CityHandler
	compareHandler *handler.CompareHandler
	cacheHandler   *handler.CacheHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthHandler *handler.HealthHandler,
	cityHandler *handler.CityHandler,
	compareHandler *handler.CompareHandler,
	cacheHandler *handler.CacheHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName: "City Fighting",
		// агрегат ждет самый медленный источник (Overpass до 25с)
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		healthHandler:  healthHandler,
		cityHandler:    cityHandler,
		compareHandler: compareHandler,
		cacheHandler:   cacheHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber приложение (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Cities
	api.Get("/cities", s.cityHandler.ListCities)
	api.Get("/cities/:name", s.cityHandler.GetCity)

	// Comparison
	api.Get("/compare", s.compareHandler.Compare)

	// Cache
	api.Delete("/cache", s.cacheHandler.Clear)
	api.Delete("/cache/:name", s.cacheHandler.Invalidate)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405, паники) в общем конверте
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code := "HTTP_ERROR"
			if fe.Code == fiber.StatusNotFound {
				code = "ROUTE_NOT_FOUND"
			}
			return utils.SendError(c, errors.New(code, fe.Message, fe.Code))
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
