package service

import (
	"context"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/internal/domain/repository"
	"github.com/colegiosys/recibos-api/pkg/apperror"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ConceptService handles fee concept operations. Every mutation
// invalidates the company's catalog snapshot.
type ConceptService struct {
	conceptRepo repository.ConceptRepository
	catalog     *CatalogService
}

// NewConceptService creates a new concept service
func NewConceptService(conceptRepo repository.ConceptRepository, catalog *CatalogService) *ConceptService {
	return &ConceptService{conceptRepo: conceptRepo, catalog: catalog}
}

// CreateConceptInput represents the create concept input
type CreateConceptInput struct {
	CompanyID uuid.UUID
	Name      string
	BaseValue int64
}

// CreateConcept creates a new concept
func (s *ConceptService) CreateConcept(ctx context.Context, input *CreateConceptInput) (*entity.Concept, error) {
	if input.BaseValue < 0 {
		return nil, apperror.NewBadRequestError("base value cannot be negative")
	}
	concept := &entity.Concept{
		CompanyID: input.CompanyID,
		Name:      input.Name,
		BaseValue: input.BaseValue,
		Active:    true,
	}
	if err := s.conceptRepo.Create(ctx, concept); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(input.CompanyID)
	return concept, nil
}

// GetConcept retrieves a concept by ID
func (s *ConceptService) GetConcept(ctx context.Context, id uuid.UUID) (*entity.Concept, error) {
	concept, err := s.conceptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, apperror.NewNotFoundError("Concept")
	}
	return concept, nil
}

// ListConcepts lists a company's concepts with pagination
func (s *ConceptService) ListConcepts(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Concept], error) {
	concepts, total, err := s.conceptRepo.List(ctx, companyID, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(concepts, pag), nil
}

// UpdateConceptInput represents the update concept input
type UpdateConceptInput struct {
	ID        uuid.UUID
	Name      *string
	BaseValue *int64
	Active    *bool
}

// UpdateConcept updates an existing concept
func (s *ConceptService) UpdateConcept(ctx context.Context, input *UpdateConceptInput) (*entity.Concept, error) {
	concept, err := s.conceptRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, apperror.NewNotFoundError("Concept")
	}

	if input.Name != nil {
		concept.Name = *input.Name
	}
	if input.BaseValue != nil {
		if *input.BaseValue < 0 {
			return nil, apperror.NewBadRequestError("base value cannot be negative")
		}
		concept.BaseValue = *input.BaseValue
	}
	if input.Active != nil {
		concept.Active = *input.Active
	}

	if err := s.conceptRepo.Update(ctx, concept); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(concept.CompanyID)
	return concept, nil
}

// DeleteConcept deletes a concept
func (s *ConceptService) DeleteConcept(ctx context.Context, id uuid.UUID) error {
	concept, err := s.conceptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if concept == nil {
		return apperror.NewNotFoundError("Concept")
	}
	if err := s.conceptRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.Invalidate(concept.CompanyID)
	return nil
}
