package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Concept represents a named, priced fee category (e.g. monthly tuition).
// BaseValue is stored in whole currency units; fees carry no fractional part.
type Concept struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	BaseValue int64          `gorm:"not null;default:0" json:"base_value"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new concept
func (c *Concept) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Concept model
func (Concept) TableName() string {
	return "concepts"
}
