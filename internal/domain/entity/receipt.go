package entity

import (
	"time"

	"github.com/colegiosys/recibos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt represents a submitted tuition receipt. Amounts are whole
// currency units; Total is the sum of the charged concepts' base values
// and AmountPaid is the total for full payments or the operator-entered
// amount for partial ones.
type Receipt struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"company_id"`
	ReceiptNo   string           `gorm:"size:100;unique;not null" json:"receipt_no"`
	PaymentMode enum.PaymentMode `gorm:"default:0" json:"payment_mode"`
	Total       int64            `gorm:"default:0" json:"total"`
	AmountPaid  int64            `gorm:"default:0" json:"amount_paid"`
	Notes       string           `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Company Company       `gorm:"foreignKey:CompanyID" json:"-"`
	Lines   []ReceiptLine `gorm:"foreignKey:ReceiptID" json:"lines,omitempty"`
}

// OutstandingBalance returns the amount still owed on the receipt
func (r *Receipt) OutstandingBalance() int64 {
	if balance := r.Total - r.AmountPaid; balance > 0 {
		return balance
	}
	return 0
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptLine represents one billable (concept, student) pairing on a receipt
type ReceiptLine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID      `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ConceptID uuid.UUID      `gorm:"type:uuid;not null;index" json:"concept_id"`
	StudentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
	Concept Concept `gorm:"foreignKey:ConceptID" json:"concept,omitempty"`
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt line
func (rl *ReceiptLine) BeforeCreate(tx *gorm.DB) error {
	if rl.ID == uuid.Nil {
		rl.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptLine model
func (ReceiptLine) TableName() string {
	return "receipt_lines"
}
