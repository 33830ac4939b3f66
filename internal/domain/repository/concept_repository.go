package repository

import (
	"context"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ConceptRepository defines the interface for fee concept data access
type ConceptRepository interface {
	Create(ctx context.Context, concept *entity.Concept) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Concept, error)
	// ListByCompany returns every concept of the company, for catalog
	// snapshots.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Concept, error)
	List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Concept, int64, error)
	Update(ctx context.Context, concept *entity.Concept) error
	Delete(ctx context.Context, id uuid.UUID) error
}
