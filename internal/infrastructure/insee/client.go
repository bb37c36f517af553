package insee

import (
	"context"
	"net/url"
	"strings"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/infrastructure/apiclient"
	"github.com/city-fighting/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	api    *apiclient.Client
	logger *zap.Logger
}

// NewInseeClient создает клиент API данных INSEE. Без токена запросы не выполняются.
func NewInseeClient(cfg *config.InseeConfig, logger *zap.Logger) repository.SocioEconomicRepository {
	return &client{
		api:    apiclient.New("insee", cfg.BaseURL, cfg.Token, cfg.Timeout, logger),
		logger: logger,
	}
}

type indicatorDTO struct {
	Code             string   `json:"code"`
	MedianIncome     *float64 `json:"median_income"`
	UnemploymentRate *float64 `json:"unemployment_rate"`
}

// GetByCodes запрашивает показатели пачкой. Коды, которых нет в ответе, в результат не попадают.
func (c *client) GetByCodes(ctx context.Context, codes []string) (map[string]domain.SocioEconomic, error) {
	result := make(map[string]domain.SocioEconomic, len(codes))
	if !c.api.HasToken() {
		return result, errors.ErrConfigurationMissing.WithDetails(map[string]interface{}{
			"source": c.api.Source(),
			"env":    "INSEE_API_TOKEN",
		})
	}
	if len(codes) == 0 {
		return result, nil
	}

	query := url.Values{}
	query.Set("codes", strings.Join(codes, ","))

	var items []indicatorDTO
	if err := c.api.GetJSON(ctx, c.api.URL("/communes", query), &items); err != nil {
		return result, err
	}

	for _, item := range items {
		code, err := domain.NormalizeINSEECode(item.Code)
		if err != nil {
			c.logger.Debug("Skipping indicator with invalid code", zap.String("code", item.Code))
			continue
		}
		result[code] = domain.SocioEconomic{
			MedianIncome:     measure(item.MedianIncome),
			UnemploymentRate: measure(item.UnemploymentRate),
			Available:        true,
		}
	}

	c.logger.Debug("INSEE indicators loaded",
		zap.Int("requested", len(codes)),
		zap.Int("received", len(result)))

	return result, nil
}

func measure(v *float64) domain.Measure {
	if v == nil {
		return domain.Unavailable()
	}
	return domain.Known(*v)
}

