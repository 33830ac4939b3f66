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

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *gorm.DB) domainRepo.GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(ctx context.Context, grade *entity.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Grade, error) {
	var grade entity.Grade
	err := r.db.WithContext(ctx).First(&grade, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &grade, err
}

func (r *gradeRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Grade, error) {
	var grades []entity.Grade
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("sort_order ASC, name ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepository) List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Grade, int64, error) {
	var grades []entity.Grade
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Grade{}).Where("company_id = ?", companyID)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Order("sort_order ASC, name ASC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&grades).Error

	return grades, total, err
}

func (r *gradeRepository) Update(ctx context.Context, grade *entity.Grade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *gradeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Grade{}, "id = ?", id).Error
}
