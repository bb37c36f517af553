package handler

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/pkg/errors"
	"github.com/city-fighting/internal/usecase/dto"
)

// CityService - агрегаты городов и управление их кешем
type CityService interface {
	AggregateWithCacheInfo(ctx context.Context, cityName string) (*domain.CityAggregateRecord, bool, error)
	Invalidate(ctx context.Context, cityName string) error
	Clear(ctx context.Context) (int, error)
}

// CatalogService - каталог городов для выбора
type CatalogService interface {
	List(ctx context.Context) ([]domain.CommuneSummary, error)
}

// ComparisonService - сравнение двух городов
type ComparisonService interface {
	Compare(ctx context.Context, cityA, cityB string) (*dto.ComparisonResponse, error)
}

// HousingStatusService - состояние жилищного датасета
type HousingStatusService interface {
	Status() domain.HousingStatus
}

// CacheHealthChecker - доступность кеша агрегатов; для памяти всегда nil
type CacheHealthChecker interface {
	CacheHealth(ctx context.Context) error
}

// invalidRequest переводит ошибки validator в ErrInvalidRequest с полями
func invalidRequest(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrInvalidRequest, err)
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(fields)
}

// pathName - декодированный параметр пути (fiber отдает его в URL-кодировке)
func pathName(raw string) (string, error) {
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"name": "malformed escape sequence",
		})
	}
	return strings.TrimSpace(name), nil
}
