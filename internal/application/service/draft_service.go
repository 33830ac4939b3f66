package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/colegiosys/recibos-api/internal/domain/draft"
	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/internal/domain/enum"
	"github.com/colegiosys/recibos-api/internal/domain/repository"
	"github.com/colegiosys/recibos-api/pkg/apperror"
	"github.com/colegiosys/recibos-api/pkg/utils"
	"github.com/google/uuid"
)

// draftSession holds one operator's in-progress receipt. The session
// mutex serializes mutations so edits never interleave; the engine
// itself stays single-threaded per draft.
type draftSession struct {
	id         uuid.UUID
	companyID  uuid.UUID
	mu         sync.Mutex
	draft      *draft.Draft
	lastActive time.Time
}

// DraftService owns the draft session registry and forwards mutation,
// computation and submission calls into the draft engine.
type DraftService struct {
	catalog     *CatalogService
	companyRepo repository.CompanyRepository
	receiptRepo repository.ReceiptRepository

	mu       sync.RWMutex
	sessions map[uuid.UUID]*draftSession

	sessionTTL time.Duration
}

// NewDraftService creates a new draft service. Idle sessions are swept
// in the background after sessionTTL.
func NewDraftService(
	catalog *CatalogService,
	companyRepo repository.CompanyRepository,
	receiptRepo repository.ReceiptRepository,
	sessionTTL time.Duration,
) *DraftService {
	s := &DraftService{
		catalog:     catalog,
		companyRepo: companyRepo,
		receiptRepo: receiptRepo,
		sessions:    make(map[uuid.UUID]*draftSession),
		sessionTTL:  sessionTTL,
	}
	if sessionTTL > 0 {
		go s.sweepLoop()
	}
	return s
}

func (s *DraftService) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-s.sessionTTL)
		s.mu.Lock()
		for id, session := range s.sessions {
			if session.lastActive.Before(cutoff) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

// DraftState is the rendered view of a session: the draft structure
// plus the derived total and outstanding balance, recomputed on every
// read.
type DraftState struct {
	ID                 uuid.UUID           `json:"id"`
	CompanyID          uuid.UUID           `json:"company_id"`
	StudentLines       []draft.StudentLine `json:"student_lines"`
	PaymentMode        enum.PaymentMode    `json:"payment_mode"`
	PartialAmount      *int64              `json:"partial_amount,omitempty"`
	Notes              string              `json:"notes"`
	Total              int64               `json:"total"`
	OutstandingBalance int64               `json:"outstanding_balance"`
}

func (s *DraftService) state(ctx context.Context, session *draftSession) (*DraftState, error) {
	catalog, err := s.catalog.Snapshot(ctx, session.companyID)
	if err != nil {
		return nil, err
	}
	return &DraftState{
		ID:                 session.id,
		CompanyID:          session.companyID,
		StudentLines:       session.draft.StudentLines,
		PaymentMode:        session.draft.PaymentMode,
		PartialAmount:      session.draft.PartialAmount,
		Notes:              session.draft.Notes,
		Total:              draft.Total(session.draft, catalog),
		OutstandingBalance: draft.OutstandingBalance(session.draft, catalog),
	}, nil
}

// Open starts a new draft session for a company and returns its initial
// state.
func (s *DraftService) Open(ctx context.Context, companyID uuid.UUID) (*DraftState, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	session := &draftSession{
		id:         uuid.New(),
		companyID:  companyID,
		draft:      draft.New(),
		lastActive: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	return s.state(ctx, session)
}

func (s *DraftService) session(id uuid.UUID) (*draftSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return session, nil
}

// GetState returns the current structure and derived values of a draft.
func (s *DraftService) GetState(ctx context.Context, draftID uuid.UUID) (*DraftState, error) {
	session, err := s.session(draftID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.state(ctx, session)
}

// mutate runs fn on the session's draft under its lock and returns the
// resulting state. Structural guard violations map to bad requests.
func (s *DraftService) mutate(ctx context.Context, draftID uuid.UUID, fn func(*draft.Draft) error) (*DraftState, error) {
	session, err := s.session(draftID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := fn(session.draft); err != nil {
		if errors.Is(err, draft.ErrLastStudentLine) || errors.Is(err, draft.ErrLastConceptLine) {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		return nil, err
	}
	session.lastActive = time.Now()

	return s.state(ctx, session)
}

// AddStudentLine appends a new student line to the draft.
func (s *DraftService) AddStudentLine(ctx context.Context, draftID uuid.UUID) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		d.AddStudentLine()
		return nil
	})
}

// RemoveStudentLine removes a student line from the draft.
func (s *DraftService) RemoveStudentLine(ctx context.Context, draftID uuid.UUID, lineID int) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		return d.RemoveStudentLine(lineID)
	})
}

// SetGrade sets a student line's grade.
func (s *DraftService) SetGrade(ctx context.Context, draftID uuid.UUID, lineID int, gradeID uuid.UUID) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		d.SetGrade(lineID, gradeID)
		return nil
	})
}

// SetStudent sets a student line's student.
func (s *DraftService) SetStudent(ctx context.Context, draftID uuid.UUID, lineID int, studentID uuid.UUID) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		d.SetStudent(lineID, studentID)
		return nil
	})
}

// AddConceptLine appends an empty concept line to a student line.
func (s *DraftService) AddConceptLine(ctx context.Context, draftID uuid.UUID, lineID int) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		d.AddConceptLine(lineID)
		return nil
	})
}

// RemoveConceptLine removes a concept line from a student line.
func (s *DraftService) RemoveConceptLine(ctx context.Context, draftID uuid.UUID, lineID, conceptLineID int) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		return d.RemoveConceptLine(lineID, conceptLineID)
	})
}

// SetConcept sets a concept line's concept.
func (s *DraftService) SetConcept(ctx context.Context, draftID uuid.UUID, lineID, conceptLineID int, conceptID uuid.UUID) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		d.SetConcept(lineID, conceptLineID, conceptID)
		return nil
	})
}

// SetPaymentMode switches between full and partial payment.
func (s *DraftService) SetPaymentMode(ctx context.Context, draftID uuid.UUID, mode enum.PaymentMode) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		d.SetPaymentMode(mode)
		return nil
	})
}

// SetPartialAmount stores the operator's raw partial amount input.
func (s *DraftService) SetPartialAmount(ctx context.Context, draftID uuid.UUID, raw string) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		d.SetPartialAmount(raw)
		return nil
	})
}

// SetNotes replaces the draft's notes.
func (s *DraftService) SetNotes(ctx context.Context, draftID uuid.UUID, notes string) (*DraftState, error) {
	return s.mutate(ctx, draftID, func(d *draft.Draft) error {
		d.SetNotes(notes)
		return nil
	})
}

// Submit validates and flattens the draft, persists the receipt and, on
// success, replaces the session's draft with a fresh default one. The
// payload is captured synchronously before any persistence work, so
// later edits cannot leak into an in-flight submission. On validation
// failure the full error set is returned keyed by draft slot and the
// draft is left untouched for correction; on a persistence failure the
// draft also survives so the operator can retry.
func (s *DraftService) Submit(ctx context.Context, draftID uuid.UUID) (*entity.Receipt, error) {
	session, err := s.session(draftID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	catalog, err := s.catalog.Snapshot(ctx, session.companyID)
	if err != nil {
		return nil, err
	}

	payload, validationErrs := draft.BuildPayload(session.draft, catalog)
	if validationErrs != nil {
		fieldErrs := make([]apperror.FieldError, 0, len(validationErrs))
		for _, key := range validationErrs.Keys() {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field:   key.String(),
				Message: validationErrs[key],
			})
		}
		return nil, apperror.NewValidationError(fieldErrs)
	}

	receipt := &entity.Receipt{
		CompanyID:   session.companyID,
		ReceiptNo:   utils.GenerateReceiptNo(),
		PaymentMode: payload.PaymentMode,
		Total:       payload.Total,
		AmountPaid:  payload.AmountPaid,
		Notes:       payload.Notes,
	}
	for _, cl := range payload.ChargeLines {
		receipt.Lines = append(receipt.Lines, entity.ReceiptLine{
			ConceptID: cl.ConceptID,
			StudentID: cl.StudentID,
			Quantity:  cl.Quantity,
		})
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	// The committed draft is gone; the session starts over.
	session.draft = draft.New()
	session.lastActive = time.Now()

	return receipt, nil
}

// Discard abandons the session and its draft.
func (s *DraftService) Discard(draftID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[draftID]; !ok {
		return apperror.NewNotFoundError("Draft")
	}
	delete(s.sessions, draftID)
	return nil
}
