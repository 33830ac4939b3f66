package handler

import (
	"strconv"

	"github.com/colegiosys/recibos-api/internal/application/service"
	"github.com/colegiosys/recibos-api/internal/presentation/http/dto/response"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GradeHandler handles grade-related HTTP requests
type GradeHandler struct {
	gradeService *service.GradeService
}

// NewGradeHandler creates a new grade handler
func NewGradeHandler(gradeService *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// List handles listing grades for a company
func (h *GradeHandler) List(c *gin.Context) {
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

	result, err := h.gradeService.ListGrades(c.Request.Context(), companyID, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Grades retrieved successfully", result)
}

// Create handles creating a grade
func (h *GradeHandler) Create(c *gin.Context) {
	var req struct {
		CompanyID uuid.UUID `json:"company_id" binding:"required"`
		Name      string    `json:"name" binding:"required"`
		SortOrder int       `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	grade, err := h.gradeService.CreateGrade(c.Request.Context(), &service.CreateGradeInput{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Grade created successfully", grade)
}

// Get handles getting a single grade
func (h *GradeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid grade ID")
		return
	}

	grade, err := h.gradeService.GetGrade(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Grade retrieved successfully", grade)
}

// Update handles updating a grade
func (h *GradeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid grade ID")
		return
	}

	var req struct {
		Name      *string `json:"name"`
		SortOrder *int    `json:"sort_order"`
		Active    *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	grade, err := h.gradeService.UpdateGrade(c.Request.Context(), &service.UpdateGradeInput{
		ID:        id,
		Name:      req.Name,
		SortOrder: req.SortOrder,
		Active:    req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Grade updated successfully", grade)
}

// Delete handles deleting a grade
func (h *GradeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid grade ID")
		return
	}

	if err := h.gradeService.DeleteGrade(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
