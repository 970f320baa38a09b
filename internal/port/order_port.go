package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
)

// CreateOrderParams is the validated input to the order creation transaction.
type CreateOrderParams struct {
	UserID          uuid.UUID
	Lines           []domain.OrderLine
	ShippingAddress json.RawMessage
	IdempotencyKey  string
}

type OrderRepository interface {
	// CreateOrder validates lines against current prices and stock, decrements
	// stock through the locked inventory path, persists the header and items,
	// and clears the user's cart, all inside a single transaction.
	CreateOrder(ctx context.Context, params CreateOrderParams) (domain.Order, error)

	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)

	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error)
}
