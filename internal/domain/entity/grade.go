package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Grade represents a class/cohort grouping students
type Grade struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company  Company   `gorm:"foreignKey:CompanyID" json:"-"`
	Students []Student `gorm:"foreignKey:GradeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new grade
func (g *Grade) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Grade model
func (Grade) TableName() string {
	return "grades"
}
