package draft

import (
	"fmt"
	"sort"

	"github.com/colegiosys/recibos-api/internal/domain/enum"
	"github.com/google/uuid"
)

// ErrorKind tags which slot of the draft an error belongs to.
type ErrorKind int

const (
	ErrorKindGeneral ErrorKind = iota
	ErrorKindStudentLineGrade
	ErrorKindStudentLineStudent
	ErrorKindConceptLineConcept
	ErrorKindPartialAmount
)

// ErrorKey addresses one error slot: a student line's grade or student
// selector, a concept line's concept selector, the partial-amount field,
// or the catch-all general slot. Line fields are local ids and are zero
// when not applicable.
type ErrorKey struct {
	Kind        ErrorKind `json:"kind"`
	StudentLine int       `json:"student_line,omitempty"`
	ConceptLine int       `json:"concept_line,omitempty"`
}

func (k ErrorKey) String() string {
	switch k.Kind {
	case ErrorKindStudentLineGrade:
		return fmt.Sprintf("student_lines.%d.grade", k.StudentLine)
	case ErrorKindStudentLineStudent:
		return fmt.Sprintf("student_lines.%d.student", k.StudentLine)
	case ErrorKindConceptLineConcept:
		return fmt.Sprintf("student_lines.%d.concept_lines.%d.concept", k.StudentLine, k.ConceptLine)
	case ErrorKindPartialAmount:
		return "partial_amount"
	}
	return "general"
}

// ErrorSet maps slot keys to messages. It is rebuilt from scratch on
// every validation pass, never merged with a previous one.
type ErrorSet map[ErrorKey]string

// Keys returns the error keys in a stable order for display.
func (s ErrorSet) Keys() []ErrorKey {
	keys := make([]ErrorKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].StudentLine != keys[j].StudentLine {
			return keys[i].StudentLine < keys[j].StudentLine
		}
		if keys[i].ConceptLine != keys[j].ConceptLine {
			return keys[i].ConceptLine < keys[j].ConceptLine
		}
		return keys[i].Kind < keys[j].Kind
	})
	return keys
}

// ChargeLine is one billable (concept, student) pairing produced by
// flattening. Quantity is always 1; charging a concept twice yields two
// charge lines.
type ChargeLine struct {
	ConceptID uuid.UUID `json:"concept_id"`
	StudentID uuid.UUID `json:"student_id"`
	Quantity  int       `json:"quantity"`
}

// Result carries the flattened charge lines together with every error
// found across the whole draft. Errors never short-circuit flattening:
// valid lines still produce charge lines while sibling lines fail.
type Result struct {
	ChargeLines []ChargeLine `json:"charge_lines"`
	Errors      ErrorSet     `json:"errors"`
}

// OK reports whether the draft may be submitted: no errors and at least
// one charge line.
func (r *Result) OK() bool {
	return len(r.Errors) == 0 && len(r.ChargeLines) > 0
}

// Validate walks the entire draft, collecting every error and emitting a
// charge line for each concept line whose parent has a resolved student
// and which itself has a resolved concept.
func Validate(d *Draft, catalog *Catalog) *Result {
	result := &Result{Errors: make(ErrorSet)}

	for _, sl := range d.StudentLines {
		validateStudentLine(&sl, catalog, result)

		if sl.StudentID == nil {
			continue
		}
		for _, cl := range sl.ConceptLines {
			if cl.ConceptID == nil {
				continue
			}
			result.ChargeLines = append(result.ChargeLines, ChargeLine{
				ConceptID: *cl.ConceptID,
				StudentID: *sl.StudentID,
				Quantity:  1,
			})
		}
	}

	if d.PaymentMode == enum.PaymentModePartial {
		validatePartialAmount(d, catalog, result)
	}

	return result
}

func validateStudentLine(sl *StudentLine, catalog *Catalog, result *Result) {
	gradeKey := ErrorKey{Kind: ErrorKindStudentLineGrade, StudentLine: sl.LocalID}
	studentKey := ErrorKey{Kind: ErrorKindStudentLineStudent, StudentLine: sl.LocalID}

	switch {
	case sl.GradeID == nil:
		result.Errors[gradeKey] = "grade is required"
	case catalog.Grade(*sl.GradeID) == nil:
		result.Errors[gradeKey] = "selected grade no longer exists"
	}

	switch {
	case sl.StudentID == nil:
		result.Errors[studentKey] = "student is required"
	default:
		student := catalog.Student(*sl.StudentID)
		switch {
		case student == nil:
			result.Errors[studentKey] = "selected student no longer exists"
		case sl.GradeID != nil && student.GradeID != *sl.GradeID:
			result.Errors[studentKey] = "student does not belong to the selected grade"
		}
	}

	// Unreachable while the mutation guards hold, checked anyway.
	if len(sl.ConceptLines) == 0 {
		result.Errors[ErrorKey{Kind: ErrorKindGeneral}] = "every student needs at least one concept"
	}

	for _, cl := range sl.ConceptLines {
		conceptKey := ErrorKey{
			Kind:        ErrorKindConceptLineConcept,
			StudentLine: sl.LocalID,
			ConceptLine: cl.LocalID,
		}
		switch {
		case cl.ConceptID == nil:
			result.Errors[conceptKey] = "concept is required"
		case catalog.Concept(*cl.ConceptID) == nil:
			result.Errors[conceptKey] = "selected concept no longer exists"
		}
	}
}

func validatePartialAmount(d *Draft, catalog *Catalog, result *Result) {
	key := ErrorKey{Kind: ErrorKindPartialAmount}
	if d.PartialAmount == nil || *d.PartialAmount <= 0 {
		result.Errors[key] = "partial amount must be a positive number"
		return
	}
	// Paying exactly the total through the partial flow is allowed.
	if *d.PartialAmount > Total(d, catalog) {
		result.Errors[key] = "partial amount cannot exceed the receipt total"
	}
}

// Payload is the submittable form of a draft.
type Payload struct {
	ChargeLines []ChargeLine     `json:"charge_lines"`
	PaymentMode enum.PaymentMode `json:"payment_mode"`
	AmountPaid  int64            `json:"amount_paid"`
	Total       int64            `json:"total"`
	Notes       string           `json:"notes"`
}

// BuildPayload validates and flattens the draft. On success it returns
// the payload and a nil error set; otherwise the full error set. An
// error-free draft that still produced no charge lines is reported as a
// general error rather than submitted empty.
func BuildPayload(d *Draft, catalog *Catalog) (*Payload, ErrorSet) {
	result := Validate(d, catalog)
	if len(result.Errors) == 0 && len(result.ChargeLines) == 0 {
		result.Errors[ErrorKey{Kind: ErrorKindGeneral}] = "receipt has no charges to submit"
	}
	if !result.OK() {
		return nil, result.Errors
	}

	total := Total(d, catalog)
	amountPaid := total
	if d.PaymentMode == enum.PaymentModePartial {
		amountPaid = *d.PartialAmount
	}

	return &Payload{
		ChargeLines: result.ChargeLines,
		PaymentMode: d.PaymentMode,
		AmountPaid:  amountPaid,
		Total:       total,
		Notes:       d.Notes,
	}, nil
}
