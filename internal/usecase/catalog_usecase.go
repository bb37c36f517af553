package usecase

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CatalogUseCase - список городов выше порога населения для виджетов выбора.
// Загружается один раз за процесс; после неудачи следующий вызов пробует снова.
type CatalogUseCase struct {
	communeRepo   repository.CommuneRepository
	minPopulation int
	logger        *zap.Logger

	mu     sync.Mutex
	cities atomic.Pointer[[]domain.CommuneSummary]
}

// NewCatalogUseCase создает новый CatalogUseCase
func NewCatalogUseCase(communeRepo repository.CommuneRepository, minPopulation int, logger *zap.Logger) *CatalogUseCase {
	if minPopulation <= 0 {
		minPopulation = domain.DefaultMinPopulation
	}
	return &CatalogUseCase{
		communeRepo:   communeRepo,
		minPopulation: minPopulation,
		logger:        logger,
	}
}

// List возвращает копию каталога, отсортированного по-французски
func (uc *CatalogUseCase) List(ctx context.Context) ([]domain.CommuneSummary, error) {
	if cached := uc.cities.Load(); cached != nil {
		return copySummaries(*cached), nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if cached := uc.cities.Load(); cached != nil {
		return copySummaries(*cached), nil
	}

	all, err := uc.communeRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load city catalog", zap.Error(err))
		return nil, err
	}

	cities := make([]domain.CommuneSummary, 0, len(all)/10)
	for _, c := range all {
		if c.Population >= uc.minPopulation {
			cities = append(cities, c)
		}
	}

	col := collate.New(language.French)
	sort.SliceStable(cities, func(i, j int) bool {
		return col.CompareString(cities[i].Name, cities[j].Name) < 0
	})

	uc.cities.Store(&cities)
	uc.logger.Info("City catalog loaded",
		zap.Int("communes", len(all)),
		zap.Int("cities", len(cities)))

	return copySummaries(cities), nil
}

func copySummaries(in []domain.CommuneSummary) []domain.CommuneSummary {
	out := make([]domain.CommuneSummary, len(in))
	copy(out, in)
	return out
}
