package repository

import (
	"context"
	"errors"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	domainRepo "github.com/colegiosys/recibos-api/internal/domain/repository"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) domainRepo.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) CreateBatch(ctx context.Context, students []entity.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&students).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).Preload("Grade").First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}

func (r *studentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Student, error) {
	var students []entity.Student
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("full_name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepository) List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string, gradeID *uuid.UUID) ([]entity.Student, int64, error) {
	var students []entity.Student
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Student{}).Where("company_id = ?", companyID)
	if search != "" {
		query = query.Where("full_name ILIKE ?", "%"+search+"%")
	}
	if gradeID != nil {
		query = query.Where("grade_id = ?", *gradeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Grade").
		Order("full_name ASC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&students).Error

	return students, total, err
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Student{}, "id = ?", id).Error
}
