package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/city-fighting/internal/pkg/utils"
	"github.com/city-fighting/internal/usecase/dto"
)

const cacheProbeTimeout = 2 * time.Second

// HealthHandler - состояние сервиса
type HealthHandler struct {
	housing      HousingStatusService
	cache        CacheHealthChecker
	cacheBackend string
}

// NewHealthHandler - cacheBackend: "memory" или "redis"
func NewHealthHandler(housing HousingStatusService, cache CacheHealthChecker, cacheBackend string) *HealthHandler {
	return &HealthHandler{
		housing:      housing,
		cache:        cache,
		cacheBackend: cacheBackend,
	}
}

// Health godoc
// @Summary Проверка состояния
// @Description Сервис работает и без жилищного датасета, и без кеша: dataset_missing и cache_status только информируют
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), cacheProbeTimeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:      "healthy",
		Cache:       h.cacheBackend,
		CacheStatus: "ok",
		Housing:     h.housing.Status(),
	}
	// ошибки кеша агрегатор игнорирует, поэтому недоступный Redis - деградация, а не отказ
	if err := h.cache.CacheHealth(ctx); err != nil {
		resp.Status = "degraded"
		resp.CacheStatus = "unreachable"
	}

	return utils.SendSuccess(c, resp, nil)
}
