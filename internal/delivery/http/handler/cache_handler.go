package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/city-fighting/internal/pkg/utils"
	"github.com/city-fighting/internal/usecase/dto"
)

// CacheHandler - инвалидация кеша агрегатов
type CacheHandler struct {
	cityService CityService
	logger      *zap.Logger
}

func NewCacheHandler(cityService CityService, logger *zap.Logger) *CacheHandler {
	return &CacheHandler{
		cityService: cityService,
		logger:      logger,
	}
}

// Invalidate godoc
// @Summary Удалить агрегат города из кеша
// @Tags Cache
// @Produce json
// @Param name path string true "Название города"
// @Success 200 {object} utils.SuccessResponse{data=map[string]string}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/cache/{name} [delete]
func (h *CacheHandler) Invalidate(c *fiber.Ctx) error {
	name, err := pathName(c.Params("name"))
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.cityService.Invalidate(c.UserContext(), name); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"invalidated": name}, nil)
}

// Clear godoc
// @Summary Очистить кеш агрегатов
// @Tags Cache
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CacheClearResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/cache [delete]
func (h *CacheHandler) Clear(c *fiber.Ctx) error {
	removed, err := h.cityService.Clear(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to clear aggregate cache", zap.Error(err))
		return utils.SendError(c, err)
	}

	h.logger.Info("Aggregate cache cleared", zap.Int("removed", removed))
	return utils.SendSuccess(c, dto.CacheClearResponse{Removed: removed}, nil)
}
