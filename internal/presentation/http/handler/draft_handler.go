package handler

import (
	"strconv"

	"github.com/colegiosys/recibos-api/internal/application/service"
	"github.com/colegiosys/recibos-api/internal/domain/enum"
	"github.com/colegiosys/recibos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DraftHandler handles receipt draft session HTTP requests. Every
// mutation returns the draft's resulting state so the client can render
// the updated structure and derived values without a second request.
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

func (h *DraftHandler) draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *DraftHandler) lineID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return 0, false
	}
	return id, true
}

// Open starts a new draft session
func (h *DraftHandler) Open(c *gin.Context) {
	var req struct {
		CompanyID uuid.UUID `json:"company_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.draftService.Open(c.Request.Context(), req.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft opened successfully", state)
}

// Get returns the draft's structure and derived values
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	state, err := h.draftService.GetState(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", state)
}

// AddStudentLine appends a new student line
func (h *DraftHandler) AddStudentLine(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	state, err := h.draftService.AddStudentLine(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student line added", state)
}

// RemoveStudentLine removes a student line
func (h *DraftHandler) RemoveStudentLine(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	lineID, ok := h.lineID(c, "lineId")
	if !ok {
		return
	}

	state, err := h.draftService.RemoveStudentLine(c.Request.Context(), id, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student line removed", state)
}

// SetGrade sets a student line's grade
func (h *DraftHandler) SetGrade(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	lineID, ok := h.lineID(c, "lineId")
	if !ok {
		return
	}

	var req struct {
		GradeID uuid.UUID `json:"grade_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.draftService.SetGrade(c.Request.Context(), id, lineID, req.GradeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Grade set", state)
}

// SetStudent sets a student line's student
func (h *DraftHandler) SetStudent(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	lineID, ok := h.lineID(c, "lineId")
	if !ok {
		return
	}

	var req struct {
		StudentID uuid.UUID `json:"student_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.draftService.SetStudent(c.Request.Context(), id, lineID, req.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student set", state)
}

// AddConceptLine appends an empty concept line to a student line
func (h *DraftHandler) AddConceptLine(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	lineID, ok := h.lineID(c, "lineId")
	if !ok {
		return
	}

	state, err := h.draftService.AddConceptLine(c.Request.Context(), id, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Concept line added", state)
}

// RemoveConceptLine removes a concept line from a student line
func (h *DraftHandler) RemoveConceptLine(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	lineID, ok := h.lineID(c, "lineId")
	if !ok {
		return
	}
	conceptLineID, ok := h.lineID(c, "clId")
	if !ok {
		return
	}

	state, err := h.draftService.RemoveConceptLine(c.Request.Context(), id, lineID, conceptLineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Concept line removed", state)
}

// SetConcept sets a concept line's concept
func (h *DraftHandler) SetConcept(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	lineID, ok := h.lineID(c, "lineId")
	if !ok {
		return
	}
	conceptLineID, ok := h.lineID(c, "clId")
	if !ok {
		return
	}

	var req struct {
		ConceptID uuid.UUID `json:"concept_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.draftService.SetConcept(c.Request.Context(), id, lineID, conceptLineID, req.ConceptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Concept set", state)
}

// SetPaymentMode switches the draft between full and partial payment
func (h *DraftHandler) SetPaymentMode(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req struct {
		PaymentMode string `json:"payment_mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	mode, err := enum.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		response.BadRequest(c, "Payment mode must be Full or Partial")
		return
	}

	state, err := h.draftService.SetPaymentMode(c.Request.Context(), id, mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment mode set", state)
}

// SetPartialAmount stores the operator's raw partial amount input. The
// raw string is accepted as typed; whether it parses to a usable amount
// is decided at computation and validation time.
func (h *DraftHandler) SetPartialAmount(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req struct {
		Amount string `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.draftService.SetPartialAmount(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Partial amount set", state)
}

// SetNotes replaces the draft's notes
func (h *DraftHandler) SetNotes(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.draftService.SetNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notes updated", state)
}

// Submit validates the draft and persists it as a receipt. Validation
// failures come back as a 422 with the full error set keyed by draft
// slot; the draft stays editable for correction.
func (h *DraftHandler) Submit(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	receipt, err := h.draftService.Submit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Discard abandons the draft session
func (h *DraftHandler) Discard(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	if err := h.draftService.Discard(id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
