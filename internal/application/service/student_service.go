package service

import (
	"context"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/internal/domain/repository"
	"github.com/colegiosys/recibos-api/pkg/apperror"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// StudentService handles student-related operations. Every mutation
// invalidates the company's catalog snapshot.
type StudentService struct {
	studentRepo repository.StudentRepository
	gradeRepo   repository.GradeRepository
	catalog     *CatalogService
}

// NewStudentService creates a new student service
func NewStudentService(
	studentRepo repository.StudentRepository,
	gradeRepo repository.GradeRepository,
	catalog *CatalogService,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		gradeRepo:   gradeRepo,
		catalog:     catalog,
	}
}

// resolveGrade checks that the grade exists and belongs to the company.
func (s *StudentService) resolveGrade(ctx context.Context, companyID, gradeID uuid.UUID) error {
	grade, err := s.gradeRepo.GetByID(ctx, gradeID)
	if err != nil {
		return err
	}
	if grade == nil || grade.CompanyID != companyID {
		return apperror.NewBadRequestError("grade does not exist in this company")
	}
	return nil
}

// CreateStudentInput represents the create student input
type CreateStudentInput struct {
	CompanyID     uuid.UUID
	GradeID       uuid.UUID
	FullName      string
	GuardianEmail *string
}

// CreateStudent creates a new student
func (s *StudentService) CreateStudent(ctx context.Context, input *CreateStudentInput) (*entity.Student, error) {
	if err := s.resolveGrade(ctx, input.CompanyID, input.GradeID); err != nil {
		return nil, err
	}

	student := &entity.Student{
		CompanyID:     input.CompanyID,
		GradeID:       input.GradeID,
		FullName:      input.FullName,
		GuardianEmail: input.GuardianEmail,
		Active:        true,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(input.CompanyID)
	return student, nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}
	return student, nil
}

// ListStudents lists a company's students with pagination and optional
// grade filter.
func (s *StudentService) ListStudents(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string, gradeID *uuid.UUID) (*pagination.PaginatedResult[entity.Student], error) {
	students, total, err := s.studentRepo.List(ctx, companyID, params, search, gradeID)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(students, pag), nil
}

// UpdateStudentInput represents the update student input
type UpdateStudentInput struct {
	ID            uuid.UUID
	GradeID       *uuid.UUID
	FullName      *string
	GuardianEmail *string
	Active        *bool
}

// UpdateStudent updates an existing student
func (s *StudentService) UpdateStudent(ctx context.Context, input *UpdateStudentInput) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	if input.GradeID != nil {
		if err := s.resolveGrade(ctx, student.CompanyID, *input.GradeID); err != nil {
			return nil, err
		}
		student.GradeID = *input.GradeID
	}
	if input.FullName != nil {
		student.FullName = *input.FullName
	}
	if input.GuardianEmail != nil {
		student.GuardianEmail = input.GuardianEmail
	}
	if input.Active != nil {
		student.Active = *input.Active
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(student.CompanyID)
	return student, nil
}

// DeleteStudent deletes a student
func (s *StudentService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return apperror.NewNotFoundError("Student")
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.Invalidate(student.CompanyID)
	return nil
}
