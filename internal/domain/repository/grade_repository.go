package repository

import (
	"context"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// GradeRepository defines the interface for grade data access
type GradeRepository interface {
	Create(ctx context.Context, grade *entity.Grade) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Grade, error)
	// ListByCompany returns every grade of the company ordered by sort
	// order, for catalog snapshots.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Grade, error)
	List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Grade, int64, error)
	Update(ctx context.Context, grade *entity.Grade) error
	Delete(ctx context.Context, id uuid.UUID) error
}
