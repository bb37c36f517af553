package repository

import (
	"context"

	"github.com/city-fighting/internal/domain"
)

// CommuneRepository - справочник коммун (geo.api.gouv.fr)
type CommuneRepository interface {
	// SearchByName возвращает кандидатов в порядке источника; фильтрация по имени и населению - на вызывающей стороне
	SearchByName(ctx context.Context, name string) ([]domain.CommuneRecord, error)

	// ListAll возвращает все коммуны с населением
	ListAll(ctx context.Context) ([]domain.CommuneSummary, error)

	// GetBoundary возвращает контур коммуны
	GetBoundary(ctx context.Context, inseeCode string) (domain.Boundary, error)
}
