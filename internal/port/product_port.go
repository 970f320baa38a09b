package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)

	InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	// UpdateProduct rewrites catalog metadata and price. It never touches
	// stock; stock moves only through AdjustStock and SetStock.
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// AdjustStock applies a relative delta under a row lock and fails without
	// mutation when the result would drop below zero. A stock history row is
	// appended in the same transaction when the count actually changes.
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int, actorID *uuid.UUID) (domain.Product, error)

	// SetStock resets the count absolutely through the same locked path.
	SetStock(ctx context.Context, productID uuid.UUID, stock int, actorID *uuid.UUID) (domain.Product, error)
}
