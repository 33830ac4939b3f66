package handler

import (
	"io"

	"github.com/colegiosys/recibos-api/internal/application/service"
	"github.com/colegiosys/recibos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImportBodySize caps import payloads at 10 MB.
const maxImportBodySize = 10 << 20

// ImportHandler handles bulk student import HTTP requests
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportJSON imports students from a JSON array body
func (h *ImportHandler) ImportJSON(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing company_id")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBodySize))
	if err != nil {
		response.BadRequest(c, "Could not read request body")
		return
	}

	result, err := h.importService.ImportJSON(c.Request.Context(), companyID, raw)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", result)
}

// ImportXLSX imports students from an uploaded spreadsheet
func (h *ImportHandler) ImportXLSX(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing company_id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload")
		return
	}
	if fileHeader.Size > maxImportBodySize {
		response.BadRequest(c, "File too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not open uploaded file")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportXLSX(c.Request.Context(), companyID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", result)
}
