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

type conceptRepository struct {
	db *gorm.DB
}

// NewConceptRepository creates a new concept repository
func NewConceptRepository(db *gorm.DB) domainRepo.ConceptRepository {
	return &conceptRepository{db: db}
}

func (r *conceptRepository) Create(ctx context.Context, concept *entity.Concept) error {
	return r.db.WithContext(ctx).Create(concept).Error
}

func (r *conceptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Concept, error) {
	var concept entity.Concept
	err := r.db.WithContext(ctx).First(&concept, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &concept, err
}

func (r *conceptRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Concept, error) {
	var concepts []entity.Concept
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&concepts).Error
	return concepts, err
}

func (r *conceptRepository) List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Concept, int64, error) {
	var concepts []entity.Concept
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Concept{}).Where("company_id = ?", companyID)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Order("name ASC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&concepts).Error

	return concepts, total, err
}

func (r *conceptRepository) Update(ctx context.Context, concept *entity.Concept) error {
	return r.db.WithContext(ctx).Save(concept).Error
}

func (r *conceptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Concept{}, "id = ?", id).Error
}
