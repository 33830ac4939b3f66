package service

import (
	"context"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/internal/domain/repository"
	"github.com/colegiosys/recibos-api/pkg/apperror"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// GradeService handles grade-related operations. Every mutation
// invalidates the company's catalog snapshot.
type GradeService struct {
	gradeRepo repository.GradeRepository
	catalog   *CatalogService
}

// NewGradeService creates a new grade service
func NewGradeService(gradeRepo repository.GradeRepository, catalog *CatalogService) *GradeService {
	return &GradeService{gradeRepo: gradeRepo, catalog: catalog}
}

// CreateGradeInput represents the create grade input
type CreateGradeInput struct {
	CompanyID uuid.UUID
	Name      string
	SortOrder int
}

// CreateGrade creates a new grade
func (s *GradeService) CreateGrade(ctx context.Context, input *CreateGradeInput) (*entity.Grade, error) {
	grade := &entity.Grade{
		CompanyID: input.CompanyID,
		Name:      input.Name,
		SortOrder: input.SortOrder,
		Active:    true,
	}
	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(input.CompanyID)
	return grade, nil
}

// GetGrade retrieves a grade by ID
func (s *GradeService) GetGrade(ctx context.Context, id uuid.UUID) (*entity.Grade, error) {
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, apperror.NewNotFoundError("Grade")
	}
	return grade, nil
}

// ListGrades lists a company's grades with pagination
func (s *GradeService) ListGrades(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Grade], error) {
	grades, total, err := s.gradeRepo.List(ctx, companyID, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(grades, pag), nil
}

// UpdateGradeInput represents the update grade input
type UpdateGradeInput struct {
	ID        uuid.UUID
	Name      *string
	SortOrder *int
	Active    *bool
}

// UpdateGrade updates an existing grade
func (s *GradeService) UpdateGrade(ctx context.Context, input *UpdateGradeInput) (*entity.Grade, error) {
	grade, err := s.gradeRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, apperror.NewNotFoundError("Grade")
	}

	if input.Name != nil {
		grade.Name = *input.Name
	}
	if input.SortOrder != nil {
		grade.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		grade.Active = *input.Active
	}

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(grade.CompanyID)
	return grade, nil
}

// DeleteGrade deletes a grade
func (s *GradeService) DeleteGrade(ctx context.Context, id uuid.UUID) error {
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if grade == nil {
		return apperror.NewNotFoundError("Grade")
	}
	if err := s.gradeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.Invalidate(grade.CompanyID)
	return nil
}
