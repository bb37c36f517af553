package usecase

import (
	"context"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"go.uber.org/zap"
)

// HousingUseCase - состояние жилищного датасета
type HousingUseCase struct {
	housingRepo repository.HousingRepository
	logger      *zap.Logger
}

func NewHousingUseCase(housingRepo repository.HousingRepository, logger *zap.Logger) *HousingUseCase {
	return &HousingUseCase{
		housingRepo: housingRepo,
		logger:      logger,
	}
}

// Preload загружает датасет заранее, чтобы первый запрос не ждал чтения файлов.
// ErrDatasetMissing не фатален: сервис работает без жилищных данных.
func (uc *HousingUseCase) Preload(ctx context.Context) domain.HousingStatus {
	if _, err := uc.housingRepo.Table(ctx); err != nil {
		uc.logger.Debug("Housing preload finished with error", zap.Error(err))
	}
	return uc.housingRepo.Status()
}

func (uc *HousingUseCase) Status() domain.HousingStatus {
	return uc.housingRepo.Status()
}
