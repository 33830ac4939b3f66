package service

import (
	"context"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/internal/domain/repository"
	"github.com/colegiosys/recibos-api/pkg/apperror"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// CompanyService handles company-related operations
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CreateCompanyInput represents the create company input
type CreateCompanyInput struct {
	Name    string
	Address *string
	Phone   *string
}

// CreateCompany creates a new company
func (s *CompanyService) CreateCompany(ctx context.Context, input *CreateCompanyInput) (*entity.Company, error) {
	company := &entity.Company{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Active:  true,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// ListCompanies lists companies with pagination
func (s *CompanyService) ListCompanies(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(companies, pag), nil
}

// UpdateCompanyInput represents the update company input
type UpdateCompanyInput struct {
	ID      uuid.UUID
	Name    *string
	Address *string
	Phone   *string
	Active  *bool
}

// UpdateCompany updates an existing company
func (s *CompanyService) UpdateCompany(ctx context.Context, input *UpdateCompanyInput) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.Phone != nil {
		company.Phone = input.Phone
	}
	if input.Active != nil {
		company.Active = *input.Active
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany deletes a company
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return apperror.NewNotFoundError("Company")
	}
	return s.companyRepo.Delete(ctx, id)
}
