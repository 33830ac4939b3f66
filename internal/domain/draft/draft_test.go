package draft

import (
	"testing"

	"github.com/colegiosys/recibos-api/internal/domain/enum"
	"github.com/google/uuid"
)

func TestNewDraftShape(t *testing.T) {
	d := New()

	if len(d.StudentLines) != 1 {
		t.Fatalf("New() student lines = %d, want 1", len(d.StudentLines))
	}
	sl := d.StudentLines[0]
	if len(sl.ConceptLines) != 1 {
		t.Fatalf("New() concept lines = %d, want 1", len(sl.ConceptLines))
	}
	if sl.GradeID != nil || sl.StudentID != nil || sl.ConceptLines[0].ConceptID != nil {
		t.Error("New() should create empty, unresolved lines")
	}
	if d.PaymentMode != enum.PaymentModeFull {
		t.Errorf("New() payment mode = %v, want Full", d.PaymentMode)
	}
}

func TestAddRemoveStudentLine(t *testing.T) {
	d := New()
	first := d.StudentLines[0].LocalID

	second := d.AddStudentLine()
	if len(d.StudentLines) != 2 {
		t.Fatalf("student lines = %d, want 2", len(d.StudentLines))
	}
	if second == first {
		t.Error("local ids must be unique within the draft")
	}

	if err := d.RemoveStudentLine(second); err != nil {
		t.Fatalf("RemoveStudentLine(%d) error = %v", second, err)
	}
	if len(d.StudentLines) != 1 {
		t.Fatalf("student lines after remove = %d, want 1", len(d.StudentLines))
	}

	// Removing the sole remaining line is rejected.
	if err := d.RemoveStudentLine(first); err != ErrLastStudentLine {
		t.Errorf("RemoveStudentLine(last) error = %v, want ErrLastStudentLine", err)
	}
	if len(d.StudentLines) != 1 {
		t.Errorf("draft must always keep at least one student line")
	}

	// Unknown ids are no-ops.
	if err := d.RemoveStudentLine(9999); err != nil {
		t.Errorf("RemoveStudentLine(unknown) error = %v, want nil", err)
	}
}

func TestAddRemoveConceptLine(t *testing.T) {
	d := New()
	lineID := d.StudentLines[0].LocalID
	firstCL := d.StudentLines[0].ConceptLines[0].LocalID

	secondCL := d.AddConceptLine(lineID)
	if secondCL == 0 {
		t.Fatal("AddConceptLine returned 0 for a known student line")
	}
	if got := len(d.StudentLines[0].ConceptLines); got != 2 {
		t.Fatalf("concept lines = %d, want 2", got)
	}

	if err := d.RemoveConceptLine(lineID, secondCL); err != nil {
		t.Fatalf("RemoveConceptLine error = %v", err)
	}
	if err := d.RemoveConceptLine(lineID, firstCL); err != ErrLastConceptLine {
		t.Errorf("RemoveConceptLine(last) error = %v, want ErrLastConceptLine", err)
	}
	if got := len(d.StudentLines[0].ConceptLines); got != 1 {
		t.Errorf("student line must always keep at least one concept line")
	}

	if got := d.AddConceptLine(9999); got != 0 {
		t.Errorf("AddConceptLine(unknown line) = %d, want 0", got)
	}
	if err := d.RemoveConceptLine(9999, firstCL); err != nil {
		t.Errorf("RemoveConceptLine(unknown line) error = %v, want nil", err)
	}
}

func TestSetGradeClearsStudentOnThatLineOnly(t *testing.T) {
	d := New()
	lineA := d.StudentLines[0].LocalID
	lineB := d.AddStudentLine()

	gradeA, gradeB := uuid.New(), uuid.New()
	studentA, studentB := uuid.New(), uuid.New()

	d.SetGrade(lineA, gradeA)
	d.SetStudent(lineA, studentA)
	d.SetGrade(lineB, gradeA)
	d.SetStudent(lineB, studentB)

	// Changing the grade clears the student selection unconditionally,
	// even if the student would still fit the new grade.
	d.SetGrade(lineA, gradeB)

	if d.StudentLines[0].StudentID != nil {
		t.Error("SetGrade must clear the line's student selection")
	}
	if d.StudentLines[0].GradeID == nil || *d.StudentLines[0].GradeID != gradeB {
		t.Error("SetGrade must set the new grade")
	}
	if d.StudentLines[1].StudentID == nil || *d.StudentLines[1].StudentID != studentB {
		t.Error("SetGrade must never affect sibling student lines")
	}

	// Unknown line is a no-op.
	d.SetGrade(9999, gradeA)
	d.SetStudent(9999, studentA)
	d.SetConcept(9999, 1, uuid.New())
}

func TestSetConceptAllowsRepeats(t *testing.T) {
	d := New()
	lineID := d.StudentLines[0].LocalID
	firstCL := d.StudentLines[0].ConceptLines[0].LocalID
	secondCL := d.AddConceptLine(lineID)

	conceptID := uuid.New()
	d.SetConcept(lineID, firstCL, conceptID)
	d.SetConcept(lineID, secondCL, conceptID)

	for i, cl := range d.StudentLines[0].ConceptLines {
		if cl.ConceptID == nil || *cl.ConceptID != conceptID {
			t.Errorf("concept line %d not set, same concept twice is billed twice", i)
		}
	}
}

func TestSetPaymentModeResetsPartialAmount(t *testing.T) {
	d := New()
	d.SetPaymentMode(enum.PaymentModePartial)
	d.SetPartialAmount("30")
	if d.PartialAmount == nil || *d.PartialAmount != 30 {
		t.Fatal("SetPartialAmount(\"30\") should store 30")
	}

	// Full -> Partial -> Full round trip must not keep a stale amount.
	d.SetPaymentMode(enum.PaymentModeFull)
	if d.PartialAmount != nil {
		t.Error("switching payment mode must reset the partial amount")
	}
	d.SetPaymentMode(enum.PaymentModePartial)
	if d.PartialAmount != nil {
		t.Error("partial amount must not survive a mode round trip")
	}
}

func TestSetPartialAmountRawInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int64
	}{
		{name: "plain integer", raw: "150", want: int64Ptr(150)},
		{name: "whitespace trimmed", raw: " 42 ", want: int64Ptr(42)},
		{name: "negative stored raw", raw: "-5", want: int64Ptr(-5)},
		{name: "non-numeric stored as unset", raw: "abc", want: nil},
		{name: "empty stored as unset", raw: "", want: nil},
		{name: "decimal stored as unset", raw: "10.5", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			d.SetPaymentMode(enum.PaymentModePartial)
			d.SetPartialAmount(tt.raw)
			switch {
			case tt.want == nil && d.PartialAmount != nil:
				t.Errorf("SetPartialAmount(%q) = %d, want unset", tt.raw, *d.PartialAmount)
			case tt.want != nil && d.PartialAmount == nil:
				t.Errorf("SetPartialAmount(%q) = unset, want %d", tt.raw, *tt.want)
			case tt.want != nil && *d.PartialAmount != *tt.want:
				t.Errorf("SetPartialAmount(%q) = %d, want %d", tt.raw, *d.PartialAmount, *tt.want)
			}
		})
	}
}

func int64Ptr(v int64) *int64 { return &v }
