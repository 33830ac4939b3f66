package draft

import (
	"errors"
	"strconv"
	"strings"

	"github.com/colegiosys/recibos-api/internal/domain/enum"
	"github.com/google/uuid"
)

// Structural guards. A draft keeps at least one student line and every
// student line keeps at least one concept line.
var (
	ErrLastStudentLine = errors.New("a receipt must keep at least one student line")
	ErrLastConceptLine = errors.New("a student line must keep at least one concept line")
)

// ConceptLine is one fee slot on a student line. LocalID is draft-scoped,
// never persisted, and only used to address the line while editing.
type ConceptLine struct {
	LocalID   int        `json:"local_id"`
	ConceptID *uuid.UUID `json:"concept_id,omitempty"`
}

// StudentLine groups the concept lines charged to one student.
type StudentLine struct {
	LocalID      int           `json:"local_id"`
	GradeID      *uuid.UUID    `json:"grade_id,omitempty"`
	StudentID    *uuid.UUID    `json:"student_id,omitempty"`
	ConceptLines []ConceptLine `json:"concept_lines"`
}

// Draft is the in-progress, uncommitted receipt being composed. It is
// owned by a single editing session; mutations are not safe for
// concurrent use and the owning session must serialize them.
type Draft struct {
	StudentLines  []StudentLine    `json:"student_lines"`
	PaymentMode   enum.PaymentMode `json:"payment_mode"`
	PartialAmount *int64           `json:"partial_amount,omitempty"`
	Notes         string           `json:"notes"`

	nextLocalID int
}

// New creates a fresh draft with one empty student line holding one
// empty concept line.
func New() *Draft {
	d := &Draft{PaymentMode: enum.PaymentModeFull}
	d.AddStudentLine()
	return d
}

func (d *Draft) allocID() int {
	d.nextLocalID++
	return d.nextLocalID
}

func (d *Draft) line(localID int) *StudentLine {
	for i := range d.StudentLines {
		if d.StudentLines[i].LocalID == localID {
			return &d.StudentLines[i]
		}
	}
	return nil
}

// AddStudentLine appends a new student line with one empty concept line
// and returns its local id.
func (d *Draft) AddStudentLine() int {
	sl := StudentLine{
		LocalID:      d.allocID(),
		ConceptLines: []ConceptLine{{LocalID: d.allocID()}},
	}
	d.StudentLines = append(d.StudentLines, sl)
	return sl.LocalID
}

// RemoveStudentLine removes the addressed student line. Removing the
// last remaining line is rejected; an unknown id is a no-op.
func (d *Draft) RemoveStudentLine(localID int) error {
	for i := range d.StudentLines {
		if d.StudentLines[i].LocalID != localID {
			continue
		}
		if len(d.StudentLines) == 1 {
			return ErrLastStudentLine
		}
		d.StudentLines = append(d.StudentLines[:i], d.StudentLines[i+1:]...)
		return nil
	}
	return nil
}

// SetGrade sets the line's grade and clears its student selection, even
// when the previous student would still fit the new grade. Other lines
// are never touched.
func (d *Draft) SetGrade(localID int, gradeID uuid.UUID) {
	sl := d.line(localID)
	if sl == nil {
		return
	}
	sl.GradeID = &gradeID
	sl.StudentID = nil
}

// SetStudent sets the line's student. Grade membership is not checked
// here; the validation pass reports mismatches at submit time.
func (d *Draft) SetStudent(localID int, studentID uuid.UUID) {
	sl := d.line(localID)
	if sl == nil {
		return
	}
	sl.StudentID = &studentID
}

// AddConceptLine appends an empty concept line to the addressed student
// line and returns its local id, or 0 for an unknown student line.
func (d *Draft) AddConceptLine(localID int) int {
	sl := d.line(localID)
	if sl == nil {
		return 0
	}
	cl := ConceptLine{LocalID: d.allocID()}
	sl.ConceptLines = append(sl.ConceptLines, cl)
	return cl.LocalID
}

// RemoveConceptLine removes a concept line from its student line.
// Removing the line's only concept line is rejected; unknown ids are
// no-ops.
func (d *Draft) RemoveConceptLine(localID, conceptLocalID int) error {
	sl := d.line(localID)
	if sl == nil {
		return nil
	}
	for i := range sl.ConceptLines {
		if sl.ConceptLines[i].LocalID != conceptLocalID {
			continue
		}
		if len(sl.ConceptLines) == 1 {
			return ErrLastConceptLine
		}
		sl.ConceptLines = append(sl.ConceptLines[:i], sl.ConceptLines[i+1:]...)
		return nil
	}
	return nil
}

// SetConcept sets a concept line's concept. The same concept may appear
// on several lines of one student and is then billed once per line.
func (d *Draft) SetConcept(localID, conceptLocalID int, conceptID uuid.UUID) {
	sl := d.line(localID)
	if sl == nil {
		return
	}
	for i := range sl.ConceptLines {
		if sl.ConceptLines[i].LocalID == conceptLocalID {
			sl.ConceptLines[i].ConceptID = &conceptID
			return
		}
	}
}

// SetPaymentMode switches the payment mode. Changing mode resets the
// partial amount so a stale value cannot survive a Full -> Partial ->
// Full round trip.
func (d *Draft) SetPaymentMode(mode enum.PaymentMode) {
	if !mode.Valid() {
		return
	}
	if mode != d.PaymentMode {
		d.PartialAmount = nil
	}
	d.PaymentMode = mode
}

// SetPartialAmount stores the operator's raw input. Non-numeric input
// stores as unset; range checks happen at submit time, not per
// keystroke.
func (d *Draft) SetPartialAmount(raw string) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		d.PartialAmount = nil
		return
	}
	d.PartialAmount = &value
}

// SetNotes replaces the free-form notes.
func (d *Draft) SetNotes(notes string) {
	d.Notes = notes
}
