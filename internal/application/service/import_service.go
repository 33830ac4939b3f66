package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/internal/domain/repository"
	"github.com/colegiosys/recibos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// StudentRecord is one raw record of a bulk student import.
type StudentRecord struct {
	FullName      string  `json:"full_name"`
	GuardianEmail *string `json:"guardian_email,omitempty"`
	GradeName     string  `json:"grade_name"`
}

// RecordError reports why one record of the batch was rejected.
type RecordError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// ImportResult aggregates a batch import: how many records were
// accepted and the per-record detail for the rejected ones.
type ImportResult struct {
	AcceptedCount int           `json:"accepted_count"`
	Errors        []RecordError `json:"errors,omitempty"`
}

// ImportService reconciles bulk student imports against the grade
// catalog and forwards accepted records to the student repository in a
// single batch call.
type ImportService struct {
	gradeRepo   repository.GradeRepository
	studentRepo repository.StudentRepository
	catalog     *CatalogService
}

// NewImportService creates a new import service
func NewImportService(
	gradeRepo repository.GradeRepository,
	studentRepo repository.StudentRepository,
	catalog *CatalogService,
) *ImportService {
	return &ImportService{
		gradeRepo:   gradeRepo,
		studentRepo: studentRepo,
		catalog:     catalog,
	}
}

// ImportJSON imports a JSON batch. The payload must decode to an array
// of records; anything else fails fast, before any database work.
func (s *ImportService) ImportJSON(ctx context.Context, companyID uuid.UUID, raw []byte) (*ImportResult, error) {
	var records []StudentRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperror.NewBadRequestError("import payload must be a JSON array of student records")
	}
	return s.reconcile(ctx, companyID, records)
}

// ImportXLSX imports students from the first sheet of a spreadsheet.
// The header row must name the columns full_name, guardian_email and
// grade_name; parsing failures abort before any database work.
func (s *ImportService) ImportXLSX(ctx context.Context, companyID uuid.UUID, r io.Reader) (*ImportResult, error) {
	records, err := parseXLSX(r)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	return s.reconcile(ctx, companyID, records)
}

func parseXLSX(r io.Reader) ([]StudentRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read spreadsheet: %v", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("could not read rows: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	// Resolve column positions from the header row.
	cols := map[string]int{}
	for i, header := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(header))] = i
	}
	nameCol, ok := cols["full_name"]
	if !ok {
		return nil, fmt.Errorf("missing required column full_name")
	}
	gradeCol, ok := cols["grade_name"]
	if !ok {
		return nil, fmt.Errorf("missing required column grade_name")
	}
	emailCol, hasEmail := cols["guardian_email"]

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var records []StudentRecord
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		record := StudentRecord{
			FullName:  cell(row, nameCol),
			GradeName: cell(row, gradeCol),
		}
		if hasEmail {
			if email := cell(row, emailCol); email != "" {
				record.GuardianEmail = &email
			}
		}
		if record.FullName == "" && record.GradeName == "" {
			continue // blank row
		}
		records = append(records, record)
	}
	return records, nil
}

// reconcile validates each record against the company's grades, batch
// creates the accepted ones in one repository call and reloads the
// catalog when anything was created. Rejected records never block
// accepted ones.
func (s *ImportService) reconcile(ctx context.Context, companyID uuid.UUID, records []StudentRecord) (*ImportResult, error) {
	grades, err := s.gradeRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	gradesByName := make(map[string]uuid.UUID, len(grades))
	for _, g := range grades {
		gradesByName[strings.ToLower(g.Name)] = g.ID
	}

	result := &ImportResult{}
	students := make([]entity.Student, 0, len(records))

	for i, record := range records {
		fullName := strings.TrimSpace(record.FullName)
		gradeName := strings.TrimSpace(record.GradeName)

		switch {
		case fullName == "":
			result.Errors = append(result.Errors, RecordError{Index: i, Message: "full name is required"})
			continue
		case gradeName == "":
			result.Errors = append(result.Errors, RecordError{Index: i, Message: "grade name is required"})
			continue
		}

		gradeID, ok := gradesByName[strings.ToLower(gradeName)]
		if !ok {
			result.Errors = append(result.Errors, RecordError{
				Index:   i,
				Message: fmt.Sprintf("unknown grade %q", gradeName),
			})
			continue
		}

		students = append(students, entity.Student{
			CompanyID:     companyID,
			GradeID:       gradeID,
			FullName:      fullName,
			GuardianEmail: record.GuardianEmail,
			Active:        true,
		})
	}

	if len(students) > 0 {
		if err := s.studentRepo.CreateBatch(ctx, students); err != nil {
			return nil, err
		}
		result.AcceptedCount = len(students)
		// New students must show up immediately.
		s.catalog.Invalidate(companyID)
	}

	return result, nil
}
