package handler

import (
	"strconv"

	"github.com/colegiosys/recibos-api/internal/application/service"
	"github.com/colegiosys/recibos-api/internal/presentation/http/dto/response"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConceptHandler handles fee concept HTTP requests
type ConceptHandler struct {
	conceptService *service.ConceptService
}

// NewConceptHandler creates a new concept handler
func NewConceptHandler(conceptService *service.ConceptService) *ConceptHandler {
	return &ConceptHandler{conceptService: conceptService}
}

// List handles listing concepts for a company
func (h *ConceptHandler) List(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing company_id")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.conceptService.ListConcepts(c.Request.Context(), companyID, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Concepts retrieved successfully", result)
}

// Create handles creating a concept
func (h *ConceptHandler) Create(c *gin.Context) {
	var req struct {
		CompanyID uuid.UUID `json:"company_id" binding:"required"`
		Name      string    `json:"name" binding:"required"`
		BaseValue int64     `json:"base_value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	concept, err := h.conceptService.CreateConcept(c.Request.Context(), &service.CreateConceptInput{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		BaseValue: req.BaseValue,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Concept created successfully", concept)
}

// Get handles getting a single concept
func (h *ConceptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid concept ID")
		return
	}

	concept, err := h.conceptService.GetConcept(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Concept retrieved successfully", concept)
}

// Update handles updating a concept
func (h *ConceptHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid concept ID")
		return
	}

	var req struct {
		Name      *string `json:"name"`
		BaseValue *int64  `json:"base_value"`
		Active    *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	concept, err := h.conceptService.UpdateConcept(c.Request.Context(), &service.UpdateConceptInput{
		ID:        id,
		Name:      req.Name,
		BaseValue: req.BaseValue,
		Active:    req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Concept updated successfully", concept)
}

// Delete handles deleting a concept
func (h *ConceptHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid concept ID")
		return
	}

	if err := h.conceptService.DeleteConcept(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
