package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/city-fighting/internal/pkg/utils"
	"github.com/city-fighting/internal/pkg/validator"
	"github.com/city-fighting/internal/usecase/dto"
)

// CityHandler - обработчик запросов по городам
type CityHandler struct {
	cityService    CityService
	catalogService CatalogService
	logger         *zap.Logger
}

// NewCityHandler - создание нового CityHandler
func NewCityHandler(cityService CityService, catalogService CatalogService, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		cityService:    cityService,
		catalogService: catalogService,
		logger:         logger,
	}
}

// GetCity godoc
// @Summary Агрегированные данные города
// @Description Разрешает название в коммуну (население не ниже порога) и собирает погоду, POI, контур, показатели INSEE, транспорт и жилье. Сбой источника не приводит к ошибке: поле помечается как unavailable, статус - в sources.
// @Tags Cities
// @Produce json
// @Param name path string true "Название города (например, Lyon)"
// @Success 200 {object} utils.SuccessResponse{data=dto.CityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/cities/{name} [get]
func (h *CityHandler) GetCity(c *fiber.Ctx) error {
	name, err := pathName(c.Params("name"))
	if err != nil {
		return utils.SendError(c, err)
	}

	req := dto.CityRequest{Name: name}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	start := time.Now()
	rec, cached, err := h.cityService.AggregateWithCacheInfo(c.UserContext(), req.Name)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.CityResponse{City: rec}, &utils.Meta{
		Cached:   cached,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// ListCities godoc
// @Summary Каталог городов
// @Description Коммуны с населением не ниже порога, отсортированные по названию
// @Tags Cities
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CitiesResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/cities [get]
func (h *CityHandler) ListCities(c *fiber.Ctx) error {
	cities, err := h.catalogService.List(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.CitiesResponse{
		Cities: cities,
		Total:  len(cities),
	}, &utils.Meta{Total: len(cities)})
}
