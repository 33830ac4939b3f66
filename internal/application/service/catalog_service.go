package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/colegiosys/recibos-api/internal/domain/draft"
	"github.com/colegiosys/recibos-api/internal/domain/repository"
	"github.com/google/uuid"
)

// CatalogService is the reference catalog cache. It holds one snapshot
// of grades, concepts and students per company and replaces it
// wholesale whenever any reference entity of that company changes.
type CatalogService struct {
	gradeRepo   repository.GradeRepository
	conceptRepo repository.ConceptRepository
	studentRepo repository.StudentRepository

	mu        sync.RWMutex
	snapshots map[uuid.UUID]*draft.Catalog
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	gradeRepo repository.GradeRepository,
	conceptRepo repository.ConceptRepository,
	studentRepo repository.StudentRepository,
) *CatalogService {
	return &CatalogService{
		gradeRepo:   gradeRepo,
		conceptRepo: conceptRepo,
		studentRepo: studentRepo,
		snapshots:   make(map[uuid.UUID]*draft.Catalog),
	}
}

// Snapshot returns the cached catalog for a company, loading it from
// the repositories when no snapshot exists.
func (s *CatalogService) Snapshot(ctx context.Context, companyID uuid.UUID) (*draft.Catalog, error) {
	s.mu.RLock()
	snapshot, ok := s.snapshots[companyID]
	s.mu.RUnlock()
	if ok {
		return snapshot, nil
	}
	return s.Reload(ctx, companyID)
}

// Reload fetches a fresh catalog from the repositories and replaces the
// cached snapshot.
func (s *CatalogService) Reload(ctx context.Context, companyID uuid.UUID) (*draft.Catalog, error) {
	grades, err := s.gradeRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading grades: %w", err)
	}
	concepts, err := s.conceptRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading concepts: %w", err)
	}
	students, err := s.studentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading students: %w", err)
	}

	snapshot := draft.NewCatalog(grades, concepts, students)

	s.mu.Lock()
	s.snapshots[companyID] = snapshot
	s.mu.Unlock()

	return snapshot, nil
}

// Invalidate drops the company's snapshot so the next read reloads it.
func (s *CatalogService) Invalidate(companyID uuid.UUID) {
	s.mu.Lock()
	delete(s.snapshots, companyID)
	s.mu.Unlock()
}
