package handler

import (
	"strconv"

	"github.com/colegiosys/recibos-api/internal/application/service"
	"github.com/colegiosys/recibos-api/internal/presentation/http/dto/response"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StudentHandler handles student-related HTTP requests
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// List handles listing students for a company, optionally filtered by
// grade
func (h *StudentHandler) List(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing company_id")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	var gradeID *uuid.UUID
	if gradeIDStr := c.Query("grade_id"); gradeIDStr != "" {
		id, err := uuid.Parse(gradeIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid grade_id")
			return
		}
		gradeID = &id
	}

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.studentService.ListStudents(c.Request.Context(), companyID, params, search, gradeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Students retrieved successfully", result)
}

// Create handles creating a student
func (h *StudentHandler) Create(c *gin.Context) {
	var req struct {
		CompanyID     uuid.UUID `json:"company_id" binding:"required"`
		GradeID       uuid.UUID `json:"grade_id" binding:"required"`
		FullName      string    `json:"full_name" binding:"required"`
		GuardianEmail *string   `json:"guardian_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), &service.CreateStudentInput{
		CompanyID:     req.CompanyID,
		GradeID:       req.GradeID,
		FullName:      req.FullName,
		GuardianEmail: req.GuardianEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Student created successfully", student)
}

// Get handles getting a single student
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.studentService.GetStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student retrieved successfully", student)
}

// Update handles updating a student
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req struct {
		GradeID       *uuid.UUID `json:"grade_id"`
		FullName      *string    `json:"full_name"`
		GuardianEmail *string    `json:"guardian_email"`
		Active        *bool      `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), &service.UpdateStudentInput{
		ID:            id,
		GradeID:       req.GradeID,
		FullName:      req.FullName,
		GuardianEmail: req.GuardianEmail,
		Active:        req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student updated successfully", student)
}

// Delete handles deleting a student
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	if err := h.studentService.DeleteStudent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
