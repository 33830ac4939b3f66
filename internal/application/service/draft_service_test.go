package service

import (
	"context"
	"testing"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/internal/domain/enum"
	"github.com/colegiosys/recibos-api/pkg/apperror"
	"github.com/google/uuid"
)

type draftFixture struct {
	svc         *DraftService
	receiptRepo *fakeReceiptRepo
	companyID   uuid.UUID
	gradeID     uuid.UUID
	studentID   uuid.UUID
	conceptID   uuid.UUID
}

func newDraftFixture() *draftFixture {
	companyID := uuid.New()
	gradeID := uuid.New()
	studentID := uuid.New()
	conceptID := uuid.New()

	gradeRepo := &fakeGradeRepo{grades: []entity.Grade{
		{ID: gradeID, CompanyID: companyID, Name: "Grade 1"},
	}}
	conceptRepo := &fakeConceptRepo{concepts: []entity.Concept{
		{ID: conceptID, CompanyID: companyID, Name: "Tuition", BaseValue: 50},
	}}
	studentRepo := &fakeStudentRepo{students: []entity.Student{
		{ID: studentID, CompanyID: companyID, GradeID: gradeID, FullName: "Ana Torres"},
	}}
	companyRepo := &fakeCompanyRepo{companies: []entity.Company{
		{ID: companyID, Name: "Colegio Central"},
	}}
	receiptRepo := &fakeReceiptRepo{}

	catalog := NewCatalogService(gradeRepo, conceptRepo, studentRepo)
	svc := NewDraftService(catalog, companyRepo, receiptRepo, 0)

	return &draftFixture{
		svc:         svc,
		receiptRepo: receiptRepo,
		companyID:   companyID,
		gradeID:     gradeID,
		studentID:   studentID,
		conceptID:   conceptID,
	}
}

// fill completes the draft's single student line so it would submit
// cleanly.
func (f *draftFixture) fill(t *testing.T, ctx context.Context, draftID uuid.UUID) {
	t.Helper()
	state, err := f.svc.GetState(ctx, draftID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lineID := state.StudentLines[0].LocalID
	conceptLineID := state.StudentLines[0].ConceptLines[0].LocalID

	if _, err := f.svc.SetGrade(ctx, draftID, lineID, f.gradeID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.SetStudent(ctx, draftID, lineID, f.studentID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.SetConcept(ctx, draftID, lineID, conceptLineID, f.conceptID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenReturnsInitialState(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	state, err := f.svc.Open(ctx, f.companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.StudentLines) != 1 {
		t.Fatalf("expected 1 student line, got %d", len(state.StudentLines))
	}
	if len(state.StudentLines[0].ConceptLines) != 1 {
		t.Fatalf("expected 1 concept line, got %d", len(state.StudentLines[0].ConceptLines))
	}
	if state.PaymentMode != enum.PaymentModeFull {
		t.Errorf("expected full payment mode, got %v", state.PaymentMode)
	}
	if state.Total != 0 {
		t.Errorf("expected zero total, got %d", state.Total)
	}
}

func TestOpenUnknownCompany(t *testing.T) {
	f := newDraftFixture()

	_, err := f.svc.Open(context.Background(), uuid.New())
	if apperror.GetAppError(err).Code != 404 {
		t.Fatalf("expected 404 for unknown company, got %v", err)
	}
}

func TestMutateUnknownSession(t *testing.T) {
	f := newDraftFixture()

	_, err := f.svc.AddStudentLine(context.Background(), uuid.New())
	if apperror.GetAppError(err).Code != 404 {
		t.Fatalf("expected 404 for unknown draft, got %v", err)
	}
}

func TestRemoveLastStudentLineIsBadRequest(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	state, err := f.svc.Open(ctx, f.companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.svc.RemoveStudentLine(ctx, state.ID, state.StudentLines[0].LocalID)
	if apperror.GetAppError(err).Code != 400 {
		t.Fatalf("expected 400 for removing the last student line, got %v", err)
	}
}

func TestStateRecomputesTotals(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	state, err := f.svc.Open(ctx, f.companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.fill(t, ctx, state.ID)

	if _, err := f.svc.SetPaymentMode(ctx, state.ID, enum.PaymentModePartial); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err = f.svc.SetPartialAmount(ctx, state.ID, "30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Total != 50 {
		t.Errorf("expected total 50, got %d", state.Total)
	}
	if state.OutstandingBalance != 20 {
		t.Errorf("expected outstanding balance 20, got %d", state.OutstandingBalance)
	}
}

func TestSubmitIncompleteDraftReturnsErrorSet(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	state, err := f.svc.Open(ctx, f.companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.svc.Submit(ctx, state.ID)
	if err == nil {
		t.Fatal("expected validation failure for an empty draft")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 422 {
		t.Fatalf("expected 422, got %d", appErr.Code)
	}
	if len(appErr.Errors) == 0 {
		t.Fatal("expected field errors on the validation failure")
	}
	if len(f.receiptRepo.receipts) != 0 {
		t.Error("failed validation must not persist a receipt")
	}

	// The draft survives for correction.
	after, err := f.svc.GetState(ctx, state.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after.StudentLines) != 1 {
		t.Errorf("expected the draft to survive validation failure")
	}
}

func TestSubmitPersistsAndResetsDraft(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	state, err := f.svc.Open(ctx, f.companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.fill(t, ctx, state.ID)
	if _, err := f.svc.SetNotes(ctx, state.ID, "March tuition"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	receipt, err := f.svc.Submit(ctx, state.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Total != 50 {
		t.Errorf("expected total 50, got %d", receipt.Total)
	}
	if receipt.AmountPaid != 50 {
		t.Errorf("expected full payment of 50, got %d", receipt.AmountPaid)
	}
	if len(receipt.Lines) != 1 {
		t.Fatalf("expected 1 receipt line, got %d", len(receipt.Lines))
	}
	if receipt.Lines[0].ConceptID != f.conceptID || receipt.Lines[0].StudentID != f.studentID {
		t.Error("receipt line does not match the drafted charge")
	}
	if receipt.ReceiptNo == "" {
		t.Error("expected a generated receipt number")
	}
	if len(f.receiptRepo.receipts) != 1 {
		t.Fatalf("expected 1 persisted receipt, got %d", len(f.receiptRepo.receipts))
	}

	// The session starts over with a fresh default draft.
	after, err := f.svc.GetState(ctx, state.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.Notes != "" {
		t.Errorf("expected notes cleared after submit, got %q", after.Notes)
	}
	if after.StudentLines[0].GradeID != nil {
		t.Error("expected a blank draft after submit")
	}
}

func TestSubmitPersistenceFailureKeepsDraft(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	state, err := f.svc.Open(ctx, f.companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.fill(t, ctx, state.ID)

	f.receiptRepo.createErr = errRepoDown
	if _, err := f.svc.Submit(ctx, state.ID); err == nil {
		t.Fatal("expected persistence error to propagate")
	}

	// The operator's work survives so the submit can be retried.
	after, err := f.svc.GetState(ctx, state.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.StudentLines[0].GradeID == nil {
		t.Error("expected the draft to survive a persistence failure")
	}

	f.receiptRepo.createErr = nil
	if _, err := f.svc.Submit(ctx, state.ID); err != nil {
		t.Fatalf("retry after persistence failure should succeed, got %v", err)
	}
}

func TestDiscard(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	state, err := f.svc.Open(ctx, f.companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.svc.Discard(state.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.Discard(state.ID); apperror.GetAppError(err).Code != 404 {
		t.Fatalf("expected 404 for a discarded draft, got %v", err)
	}
	if _, err := f.svc.GetState(ctx, state.ID); apperror.GetAppError(err).Code != 404 {
		t.Fatalf("expected 404 state lookup after discard, got %v", err)
	}
}
