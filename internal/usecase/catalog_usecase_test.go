package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/city-fighting/internal/domain"
	apperrors "github.com/city-fighting/internal/pkg/errors"
	"github.com/city-fighting/internal/usecase"
)

func catalogCommunes() []domain.CommuneSummary {
	return []domain.CommuneSummary{
		{Name: "Villeurbanne", INSEECode: "69266", Population: 156928},
		{Name: "Évry-Courcouronnes", INSEECode: "91228", Population: 67000},
		{Name: "Lyon", INSEECode: "69123", Population: 522250},
		{Name: "Aast", INSEECode: "64001", Population: 190},
		{Name: "Ajaccio", INSEECode: "2A004", Population: 72000},
		{Name: "Épinal", INSEECode: "88160", Population: 31000},
		{Name: "Eaubonne", INSEECode: "95203", Population: 25000},
	}
}

func TestCatalogUseCase_List(t *testing.T) {
	ctx := context.Background()
	repo := &MockCommuneRepository{}
	repo.On("ListAll", ctx).Return(catalogCommunes(), nil).Once()

	uc := usecase.NewCatalogUseCase(repo, 20000, zap.NewNop())
	cities, err := uc.List(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
	}
	// акценты не отправляют "Épinal" в конец списка
	assert.Equal(t, []string{"Ajaccio", "Eaubonne", "Épinal", "Évry-Courcouronnes", "Lyon", "Villeurbanne"}, names)

	// копия: изменения вызывающего не портят каталог
	cities[0].Name = "changed"
	again, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ajaccio", again[0].Name)

	repo.AssertNumberOfCalls(t, "ListAll", 1)
}

func TestCatalogUseCase_List_ConcurrentLoadsOnce(t *testing.T) {
	ctx := context.Background()
	repo := &MockCommuneRepository{}
	repo.On("ListAll", ctx).Return(catalogCommunes(), nil)

	uc := usecase.NewCatalogUseCase(repo, 20000, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cities, err := uc.List(ctx)
			assert.NoError(t, err)
			assert.Len(t, cities, 6)
		}()
	}
	wg.Wait()

	repo.AssertNumberOfCalls(t, "ListAll", 1)
}

func TestCatalogUseCase_List_RetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	repo := &MockCommuneRepository{}
	repo.On("ListAll", ctx).
		Return(nil, apperrors.Wrap(apperrors.ErrSourceUnavailable, errors.New("timeout"))).Once()
	repo.On("ListAll", ctx).Return(catalogCommunes(), nil).Once()

	uc := usecase.NewCatalogUseCase(repo, 20000, zap.NewNop())

	_, err := uc.List(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrSourceUnavailable))

	cities, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, 6)
	repo.AssertExpectations(t)
}
