package service

import (
	"context"
	"errors"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests.

type fakeGradeRepo struct {
	grades []entity.Grade
	err    error
}

func (f *fakeGradeRepo) Create(ctx context.Context, grade *entity.Grade) error {
	f.grades = append(f.grades, *grade)
	return f.err
}

func (f *fakeGradeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Grade, error) {
	for i := range f.grades {
		if f.grades[i].ID == id {
			return &f.grades[i], nil
		}
	}
	return nil, f.err
}

func (f *fakeGradeRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Grade, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Grade
	for _, g := range f.grades {
		if g.CompanyID == companyID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGradeRepo) List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Grade, int64, error) {
	out, err := f.ListByCompany(ctx, companyID)
	return out, int64(len(out)), err
}

func (f *fakeGradeRepo) Update(ctx context.Context, grade *entity.Grade) error { return f.err }
func (f *fakeGradeRepo) Delete(ctx context.Context, id uuid.UUID) error        { return f.err }

type fakeConceptRepo struct {
	concepts []entity.Concept
}

func (f *fakeConceptRepo) Create(ctx context.Context, concept *entity.Concept) error {
	f.concepts = append(f.concepts, *concept)
	return nil
}

func (f *fakeConceptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Concept, error) {
	for i := range f.concepts {
		if f.concepts[i].ID == id {
			return &f.concepts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeConceptRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Concept, error) {
	var out []entity.Concept
	for _, c := range f.concepts {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConceptRepo) List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Concept, int64, error) {
	out, _ := f.ListByCompany(ctx, companyID)
	return out, int64(len(out)), nil
}

func (f *fakeConceptRepo) Update(ctx context.Context, concept *entity.Concept) error { return nil }
func (f *fakeConceptRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

type fakeStudentRepo struct {
	students []entity.Student
	batchErr error
	// batchCalls counts CreateBatch invocations to assert the batch is
	// forwarded in one call.
	batchCalls int
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *entity.Student) error {
	f.students = append(f.students, *student)
	return nil
}

func (f *fakeStudentRepo) CreateBatch(ctx context.Context, students []entity.Student) error {
	f.batchCalls++
	if f.batchErr != nil {
		return f.batchErr
	}
	f.students = append(f.students, students...)
	return nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	for i := range f.students {
		if f.students[i].ID == id {
			return &f.students[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Student, error) {
	var out []entity.Student
	for _, s := range f.students {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudentRepo) List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams, search string, gradeID *uuid.UUID) ([]entity.Student, int64, error) {
	out, _ := f.ListByCompany(ctx, companyID)
	return out, int64(len(out)), nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *entity.Student) error { return nil }
func (f *fakeStudentRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

type fakeCompanyRepo struct {
	companies []entity.Company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	f.companies = append(f.companies, *company)
	return nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	for i := range f.companies {
		if f.companies[i].ID == id {
			return &f.companies[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error) {
	return f.companies, int64(len(f.companies)), nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, company *entity.Company) error { return nil }
func (f *fakeCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

type fakeReceiptRepo struct {
	receipts  []entity.Receipt
	createErr error
}

func (f *fakeReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	if f.createErr != nil {
		return f.createErr
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	f.receipts = append(f.receipts, *receipt)
	return nil
}

func (f *fakeReceiptRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			return &f.receipts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	return f.receipts, int64(len(f.receipts)), nil
}

var errRepoDown = errors.New("database unavailable")
