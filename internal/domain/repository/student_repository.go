package repository

import (
	"context"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	// CreateBatch persists the whole batch in one call; it is the
	// student-creation collaborator of the bulk import path.
	CreateBatch(ctx context.Context, students []entity.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	// ListByCompany returns every student of the company, for catalog
	// snapshots.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Student, error)
	List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string, gradeID *uuid.UUID) ([]entity.Student, int64, error)
	Update(ctx context.Context, student *entity.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}
