package service

import (
	"context"
	"testing"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/pkg/apperror"
	"github.com/google/uuid"
)

func newImportFixture() (*ImportService, *fakeGradeRepo, *fakeStudentRepo, uuid.UUID) {
	companyID := uuid.New()
	gradeRepo := &fakeGradeRepo{
		grades: []entity.Grade{
			{ID: uuid.New(), CompanyID: companyID, Name: "Grade 1"},
			{ID: uuid.New(), CompanyID: companyID, Name: "Grade 2"},
		},
	}
	conceptRepo := &fakeConceptRepo{}
	studentRepo := &fakeStudentRepo{}
	catalog := NewCatalogService(gradeRepo, conceptRepo, studentRepo)
	svc := NewImportService(gradeRepo, studentRepo, catalog)
	return svc, gradeRepo, studentRepo, companyID
}

func TestImportJSONRejectsNonArrayPayload(t *testing.T) {
	svc, _, studentRepo, companyID := newImportFixture()

	_, err := svc.ImportJSON(context.Background(), companyID, []byte(`{"full_name":"Ana"}`))
	if err == nil {
		t.Fatal("expected parse error for non-array payload")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 400 {
		t.Errorf("expected code 400, got %d", appErr.Code)
	}
	if studentRepo.batchCalls != 0 {
		t.Error("parse failure must not reach the repository")
	}
}

func TestImportJSONPartialBatch(t *testing.T) {
	svc, _, studentRepo, companyID := newImportFixture()

	payload := []byte(`[
		{"full_name": "Ana Torres", "grade_name": "Grade 1"},
		{"full_name": "Luis Rojas", "grade_name": "Grade 9"},
		{"full_name": "", "grade_name": "Grade 2"}
	]`)

	result, err := svc.ImportJSON(context.Background(), companyID, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AcceptedCount != 1 {
		t.Errorf("expected 1 accepted record, got %d", result.AcceptedCount)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 record errors, got %d", len(result.Errors))
	}
	if result.Errors[0].Index != 1 {
		t.Errorf("expected first error at index 1, got %d", result.Errors[0].Index)
	}
	if result.Errors[1].Index != 2 {
		t.Errorf("expected second error at index 2, got %d", result.Errors[1].Index)
	}
	if studentRepo.batchCalls != 1 {
		t.Errorf("expected one batch call, got %d", studentRepo.batchCalls)
	}
	if len(studentRepo.students) != 1 {
		t.Fatalf("expected 1 persisted student, got %d", len(studentRepo.students))
	}
	if studentRepo.students[0].FullName != "Ana Torres" {
		t.Errorf("unexpected persisted student %q", studentRepo.students[0].FullName)
	}
}

func TestImportJSONAllRejectedSkipsBatch(t *testing.T) {
	svc, _, studentRepo, companyID := newImportFixture()

	payload := []byte(`[{"full_name": "Luis Rojas", "grade_name": "Nope"}]`)

	result, err := svc.ImportJSON(context.Background(), companyID, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AcceptedCount != 0 {
		t.Errorf("expected 0 accepted records, got %d", result.AcceptedCount)
	}
	if studentRepo.batchCalls != 0 {
		t.Error("empty batch must not reach the repository")
	}
}

func TestImportJSONGradeNameCaseInsensitive(t *testing.T) {
	svc, _, studentRepo, companyID := newImportFixture()

	payload := []byte(`[{"full_name": "Ana Torres", "grade_name": "grade 1"}]`)

	result, err := svc.ImportJSON(context.Background(), companyID, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AcceptedCount != 1 {
		t.Fatalf("expected 1 accepted record, got %d", result.AcceptedCount)
	}
	if len(studentRepo.students) != 1 {
		t.Fatalf("expected 1 persisted student, got %d", len(studentRepo.students))
	}
}

func TestImportInvalidatesCatalogOnSuccess(t *testing.T) {
	svc, gradeRepo, _, companyID := newImportFixture()

	// Prime the snapshot so the import has something to invalidate.
	if _, err := svc.catalog.Snapshot(context.Background(), companyID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte(`[{"full_name": "Ana Torres", "grade_name": "Grade 1"}]`)
	if _, err := svc.ImportJSON(context.Background(), companyID, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A reload after invalidation must show the imported student.
	snapshot, err := svc.catalog.Snapshot(context.Background(), companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	students := snapshot.StudentsInGrade(gradeRepo.grades[0].ID)
	if len(students) != 1 {
		t.Fatalf("expected 1 student in grade after import, got %d", len(students))
	}
}

func TestImportRepoFailurePropagates(t *testing.T) {
	svc, _, studentRepo, companyID := newImportFixture()
	studentRepo.batchErr = errRepoDown

	payload := []byte(`[{"full_name": "Ana Torres", "grade_name": "Grade 1"}]`)
	if _, err := svc.ImportJSON(context.Background(), companyID, payload); err == nil {
		t.Fatal("expected repository error to propagate")
	}
}
