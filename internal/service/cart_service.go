package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	log      *zap.Logger
}

func NewCartService(carts port.CartRepository, products port.ProductRepository, log *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		log:      log.With(zap.String("component", "cart_service")),
	}
}

func (s *CartService) GetCart(ctx context.Context, actor Actor) (domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, actor.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.GetCart: %w", err)
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, actor Actor, productID uuid.UUID, quantity int) (domain.CartItem, error) {
	var item domain.CartItem

	if quantity <= 0 {
		return item, errors.New("quantity must be positive")
	}

	// Friendlier than surfacing the FK violation.
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return item, fmt.Errorf("products.GetProduct: %w", err)
	}

	item, err := s.carts.AddItem(ctx, actor.ID, productID, quantity)
	if err != nil {
		return item, fmt.Errorf("carts.AddItem: %w", err)
	}

	return item, nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, actor Actor, itemID uuid.UUID, quantity int) (domain.CartItem, error) {
	item, err := s.carts.UpdateItemQuantity(ctx, actor.ID, itemID, quantity)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("carts.UpdateItemQuantity: %w", err)
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, actor Actor, itemID uuid.UUID) (bool, error) {
	removed, err := s.carts.RemoveItem(ctx, actor.ID, itemID)
	if err != nil {
		return false, fmt.Errorf("carts.RemoveItem: %w", err)
	}
	return removed, nil
}

func (s *CartService) ClearCart(ctx context.Context, actor Actor) error {
	if err := s.carts.ClearCart(ctx, actor.ID); err != nil {
		return fmt.Errorf("carts.ClearCart: %w", err)
	}
	return nil
}
