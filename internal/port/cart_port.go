package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, userID uuid.UUID) (domain.Cart, error)

	// AddItem upserts: adding an already-carted product sums the quantities.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (domain.CartItem, error)

	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
