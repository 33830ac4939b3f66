package repository

import (
	"context"

	"github.com/colegiosys/recibos-api/internal/domain/entity"
	"github.com/colegiosys/recibos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ReceiptRepository defines the interface for receipt data access
type ReceiptRepository interface {
	// Create persists the receipt together with its lines in one
	// transaction.
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	List(ctx context.Context, companyID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
}
