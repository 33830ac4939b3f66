package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a school operating company; every catalog entity is scoped to one
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Grades   []Grade   `gorm:"foreignKey:CompanyID" json:"-"`
	Concepts []Concept `gorm:"foreignKey:CompanyID" json:"-"`
	Students []Student `gorm:"foreignKey:CompanyID" json:"-"`
	Receipts []Receipt `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}
