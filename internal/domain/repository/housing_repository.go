package repository

import (
	"context"

	"github.com/city-fighting/internal/domain"
)

// HousingRepository - жилищные датасеты, загружаемые один раз за процесс
type HousingRepository interface {
	// Table возвращает объединенную таблицу; при отсутствии файлов - пустую таблицу и ErrDatasetMissing
	Table(ctx context.Context) (*domain.HousingTable, error)

	// Status - состояние датасета без принудительной загрузки
	Status() domain.HousingStatus
}
