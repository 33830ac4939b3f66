package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student represents an enrolled student belonging to a grade
type Student struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	GradeID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"grade_id"`
	FullName      string         `gorm:"size:255;not null" json:"full_name"`
	GuardianEmail *string        `gorm:"size:255" json:"guardian_email,omitempty"`
	Active        bool           `gorm:"default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
	Grade   Grade   `gorm:"foreignKey:GradeID" json:"grade,omitempty"`
}

// BeforeCreate generates a UUID before creating a new student
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Student model
func (Student) TableName() string {
	return "students"
}
