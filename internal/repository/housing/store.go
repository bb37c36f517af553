package housing

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"go.uber.org/zap"
)

// store загружает датасет при первом обращении и дальше только отдает его
type store struct {
	loader *Loader
	logger *zap.Logger

	once   sync.Once
	loaded atomic.Bool
	table  *domain.HousingTable
	err    error
}

// NewStore создает ленивое хранилище жилищного датасета
func NewStore(loader *Loader, logger *zap.Logger) repository.HousingRepository {
	return &store{loader: loader, logger: logger}
}

// Table возвращает таблицу; ошибка загрузки (например, ErrDatasetMissing) повторяется при каждом вызове,
// но в лог попадает один раз
func (s *store) Table(ctx context.Context) (*domain.HousingTable, error) {
	s.once.Do(func() {
		// отмена запроса, который первым запустил загрузку, не должна испортить хранилище
		s.table, s.err = s.loader.LoadTable(context.WithoutCancel(ctx))
		if s.err != nil {
			s.logger.Warn("Housing dataset unavailable", zap.Error(s.err))
		}
		s.loaded.Store(true)
	})
	return s.table, s.err
}

func (s *store) Status() domain.HousingStatus {
	if !s.loaded.Load() {
		return domain.HousingStatus{Years: []int{}}
	}
	return domain.HousingStatus{
		Loaded:         true,
		DatasetMissing: s.err != nil,
		Years:          s.table.Years(),
		Rows:           s.table.Len(),
	}
}
