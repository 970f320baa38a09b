package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
)

// HistoryRepository is read-only on purpose: audit rows are appended inside
// the mutating transactions and are never updated or deleted.
type HistoryRepository interface {
	RoleHistoryByUser(ctx context.Context, userID uuid.UUID) ([]domain.RoleChange, error)
	StockHistoryByProduct(ctx context.Context, productID uuid.UUID) ([]domain.StockChange, error)
}
