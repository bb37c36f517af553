package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/city-fighting/internal/pkg/errors"
	"github.com/city-fighting/internal/pkg/utils"
	"github.com/city-fighting/internal/pkg/validator"
	"github.com/city-fighting/internal/usecase/dto"
)

// CompareHandler - обработчик сравнения городов
type CompareHandler struct {
	compareService ComparisonService
	logger         *zap.Logger
}

// NewCompareHandler - создание нового CompareHandler
func NewCompareHandler(compareService ComparisonService, logger *zap.Logger) *CompareHandler {
	return &CompareHandler{
		compareService: compareService,
		logger:         logger,
	}
}

// Compare godoc
// @Summary Сравнение двух городов
// @Description Возвращает оба агрегата и ряды для графиков: метрики, число POI по категориям, прогноз по датам
// @Tags Compare
// @Produce json
// @Param city_a query string true "Первый город"
// @Param city_b query string true "Второй город"
// @Success 200 {object} utils.SuccessResponse{data=dto.ComparisonResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse "details.cities - все ненайденные города"
// @Router /api/v1/compare [get]
func (h *CompareHandler) Compare(c *fiber.Ctx) error {
	var req dto.CompareRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.Wrap(errors.ErrInvalidRequest, err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	result, err := h.compareService.Compare(c.UserContext(), req.CityA, req.CityB)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
