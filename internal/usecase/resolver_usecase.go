package usecase

import (
	"context"
	"strings"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"github.com/city-fighting/internal/pkg/errors"
	"go.uber.org/zap"
)

// ResolverUseCase - разрешение названия города в коммуну
type ResolverUseCase struct {
	communeRepo   repository.CommuneRepository
	minPopulation int
	logger        *zap.Logger
}

// NewResolverUseCase создает новый ResolverUseCase
func NewResolverUseCase(
	communeRepo repository.CommuneRepository,
	minPopulation int,
	logger *zap.Logger,
) *ResolverUseCase {
	if minPopulation <= 0 {
		minPopulation = domain.DefaultMinPopulation
	}
	return &ResolverUseCase{
		communeRepo:   communeRepo,
		minPopulation: minPopulation,
		logger:        logger,
	}
}

// Resolve возвращает первого кандидата, чье название совпадает без учета регистра
// и население не ниже порога. Иначе - ErrCityNotFound, в том числе при сбое сервиса.
func (uc *ResolverUseCase) Resolve(ctx context.Context, cityName string) (*domain.CommuneRecord, error) {
	name := strings.TrimSpace(cityName)
	if name == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"city": "must not be empty",
		})
	}

	candidates, err := uc.communeRepo.SearchByName(ctx, name)
	if err != nil {
		uc.logger.Warn("Commune lookup failed, reporting city as not found",
			zap.String("city", name),
			zap.Error(err))
		return nil, errors.Wrap(notFound(name), err)
	}

	for _, c := range candidates {
		if c.Population >= uc.minPopulation && domain.SameName(c.Name, name) {
			commune := c
			uc.logger.Debug("City resolved",
				zap.String("city", name),
				zap.String("insee_code", commune.INSEECode),
				zap.Int("population", commune.Population))
			return &commune, nil
		}
	}

	uc.logger.Info("City not found",
		zap.String("city", name),
		zap.Int("candidates", len(candidates)),
		zap.Int("min_population", uc.minPopulation))

	return nil, notFound(name)
}

func notFound(names ...string) *errors.AppError {
	return errors.ErrCityNotFound.WithDetails(map[string]interface{}{
		"cities": names,
	})
}
