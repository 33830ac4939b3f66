package draft

import (
	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// Catalog is a read-only snapshot of one company's grades, concepts and
// students. The engine never mutates it; the owning cache replaces it
// wholesale after any reference mutation.
type Catalog struct {
	Grades   []entity.Grade   `json:"grades"`
	Concepts []entity.Concept `json:"concepts"`
	Students []entity.Student `json:"students"`

	gradesByID   map[uuid.UUID]*entity.Grade
	conceptsByID map[uuid.UUID]*entity.Concept
	studentsByID map[uuid.UUID]*entity.Student
}

// NewCatalog builds a catalog snapshot with id lookup indexes.
func NewCatalog(grades []entity.Grade, concepts []entity.Concept, students []entity.Student) *Catalog {
	c := &Catalog{
		Grades:       grades,
		Concepts:     concepts,
		Students:     students,
		gradesByID:   make(map[uuid.UUID]*entity.Grade, len(grades)),
		conceptsByID: make(map[uuid.UUID]*entity.Concept, len(concepts)),
		studentsByID: make(map[uuid.UUID]*entity.Student, len(students)),
	}
	for i := range grades {
		c.gradesByID[grades[i].ID] = &grades[i]
	}
	for i := range concepts {
		c.conceptsByID[concepts[i].ID] = &concepts[i]
	}
	for i := range students {
		c.studentsByID[students[i].ID] = &students[i]
	}
	return c
}

// Grade returns the grade with the given id, or nil if unknown.
func (c *Catalog) Grade(id uuid.UUID) *entity.Grade {
	return c.gradesByID[id]
}

// Concept returns the concept with the given id, or nil if unknown.
func (c *Catalog) Concept(id uuid.UUID) *entity.Concept {
	return c.conceptsByID[id]
}

// Student returns the student with the given id, or nil if unknown.
func (c *Catalog) Student(id uuid.UUID) *entity.Student {
	return c.studentsByID[id]
}

// StudentsInGrade returns the students belonging to a grade, for
// grade-filtered selection.
func (c *Catalog) StudentsInGrade(gradeID uuid.UUID) []entity.Student {
	var students []entity.Student
	for _, s := range c.Students {
		if s.GradeID == gradeID {
			students = append(students, s)
		}
	}
	return students
}
