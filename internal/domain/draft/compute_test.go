package draft

import (
	"testing"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/internal/domain/enum"
	"github.com/google/uuid"
)

// testCatalog builds a catalog with one grade, two students in it and
// two priced concepts.
func testCatalog() (*Catalog, entity.Grade, []entity.Student, []entity.Concept) {
	companyID := uuid.New()
	grade := entity.Grade{ID: uuid.New(), CompanyID: companyID, Name: "Grade 1", Active: true}
	students := []entity.Student{
		{ID: uuid.New(), CompanyID: companyID, GradeID: grade.ID, FullName: "Ana Diaz", Active: true},
		{ID: uuid.New(), CompanyID: companyID, GradeID: grade.ID, FullName: "Luis Rojas", Active: true},
	}
	concepts := []entity.Concept{
		{ID: uuid.New(), CompanyID: companyID, Name: "Tuition", BaseValue: 50, Active: true},
		{ID: uuid.New(), CompanyID: companyID, Name: "Materials", BaseValue: 20, Active: true},
	}
	return NewCatalog([]entity.Grade{grade}, concepts, students), grade, students, concepts
}

func TestTotalSumsResolvedConceptsOnly(t *testing.T) {
	catalog, grade, students, concepts := testCatalog()

	d := New()
	lineID := d.StudentLines[0].LocalID
	d.SetGrade(lineID, grade.ID)
	d.SetStudent(lineID, students[0].ID)
	d.SetConcept(lineID, d.StudentLines[0].ConceptLines[0].LocalID, concepts[0].ID)

	if got := Total(d, catalog); got != 50 {
		t.Errorf("Total = %d, want 50", got)
	}

	// Unresolved concept lines contribute zero.
	d.AddConceptLine(lineID)
	if got := Total(d, catalog); got != 50 {
		t.Errorf("Total with unresolved concept line = %d, want 50", got)
	}

	// A whole unresolved student line contributes zero too.
	d.AddStudentLine()
	if got := Total(d, catalog); got != 50 {
		t.Errorf("Total with unresolved student line = %d, want 50", got)
	}

	// Same concept twice bills twice.
	secondCL := d.AddConceptLine(lineID)
	d.SetConcept(lineID, secondCL, concepts[0].ID)
	if got := Total(d, catalog); got != 100 {
		t.Errorf("Total with repeated concept = %d, want 100", got)
	}

	// A concept id missing from the catalog counts as zero.
	thirdCL := d.AddConceptLine(lineID)
	d.SetConcept(lineID, thirdCL, uuid.New())
	if got := Total(d, catalog); got != 100 {
		t.Errorf("Total with unknown concept = %d, want 100", got)
	}
}

func TestOutstandingBalance(t *testing.T) {
	catalog, grade, students, concepts := testCatalog()

	newDraft := func() *Draft {
		d := New()
		lineID := d.StudentLines[0].LocalID
		d.SetGrade(lineID, grade.ID)
		d.SetStudent(lineID, students[0].ID)
		d.SetConcept(lineID, d.StudentLines[0].ConceptLines[0].LocalID, concepts[0].ID)
		return d // total 50
	}

	tests := []struct {
		name    string
		mode    enum.PaymentMode
		partial string
		want    int64
	}{
		{name: "full mode is always zero", mode: enum.PaymentModeFull, want: 0},
		{name: "partial below total", mode: enum.PaymentModePartial, partial: "30", want: 20},
		{name: "partial equal to total", mode: enum.PaymentModePartial, partial: "50", want: 0},
		{name: "partial above total clamps to zero", mode: enum.PaymentModePartial, partial: "60", want: 0},
		{name: "partial unset counts as zero paid", mode: enum.PaymentModePartial, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDraft()
			d.SetPaymentMode(tt.mode)
			if tt.partial != "" {
				d.SetPartialAmount(tt.partial)
			}
			got := OutstandingBalance(d, catalog)
			if got != tt.want {
				t.Errorf("OutstandingBalance = %d, want %d", got, tt.want)
			}
			if got < 0 || got > Total(d, catalog) {
				t.Errorf("OutstandingBalance = %d, must stay within [0, total]", got)
			}
		})
	}
}
