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

type InventoryService struct {
	products port.ProductRepository
	history  port.HistoryRepository
	log      *zap.Logger
}

func NewInventoryService(products port.ProductRepository, history port.HistoryRepository, log *zap.Logger) *InventoryService {
	return &InventoryService{
		products: products,
		history:  history,
		log:      log.With(zap.String("component", "inventory_service")),
	}
}

func (s *InventoryService) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}
	return product, nil
}

func (s *InventoryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("products.ListProducts: %w", err)
	}
	return products, nil
}

func (s *InventoryService) CreateProduct(ctx context.Context, actor Actor, product domain.Product) (domain.Product, error) {
	var p domain.Product

	if !actor.IsAdmin() {
		return p, domain.ErrForbidden
	}
	if product.Name == "" {
		return p, errors.New("name is required")
	}
	if product.Price.Amount.IsNegative() {
		return p, errors.New("price must not be negative")
	}

	created, err := s.products.InsertProduct(ctx, product)
	if err != nil {
		return p, fmt.Errorf("products.InsertProduct: %w", err)
	}

	s.log.Info("product_created",
		zap.String("product_id", created.ID.String()),
		zap.String("actor_id", actor.ID.String()))

	return created, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, actor Actor, product domain.Product) (domain.Product, error) {
	var p domain.Product

	if !actor.IsAdmin() {
		return p, domain.ErrForbidden
	}
	if product.Price.Amount.IsNegative() {
		return p, errors.New("price must not be negative")
	}

	updated, err := s.products.UpdateProduct(ctx, product)
	if err != nil {
		return p, fmt.Errorf("products.UpdateProduct: %w", err)
	}

	return updated, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, actor Actor, productID uuid.UUID) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.products.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("products.DeleteProduct: %w", err)
	}

	s.log.Info("product_deleted",
		zap.String("product_id", productID.String()),
		zap.String("actor_id", actor.ID.String()))

	return nil
}

// AdjustStock applies a relative delta through the ledger's locked path and
// leaves an audit row attributing the actor.
func (s *InventoryService) AdjustStock(ctx context.Context, actor Actor, productID uuid.UUID, delta int) (domain.Product, error) {
	var p domain.Product

	if !actor.IsAdmin() {
		return p, domain.ErrForbidden
	}

	product, err := s.products.AdjustStock(ctx, productID, delta, actorRef(actor))
	if err != nil {
		s.log.Warn("stock_adjust_failed",
			zap.String("product_id", productID.String()),
			zap.Int("delta", delta),
			zap.Error(err))
		return p, fmt.Errorf("products.AdjustStock: %w", err)
	}

	s.log.Info("stock_adjusted",
		zap.String("product_id", productID.String()),
		zap.Int("delta", delta),
		zap.Int("stock", product.Stock),
		zap.String("actor_id", actor.ID.String()))

	return product, nil
}

func (s *InventoryService) SetStock(ctx context.Context, actor Actor, productID uuid.UUID, stock int) (domain.Product, error) {
	var p domain.Product

	if !actor.IsAdmin() {
		return p, domain.ErrForbidden
	}

	product, err := s.products.SetStock(ctx, productID, stock, actorRef(actor))
	if err != nil {
		return p, fmt.Errorf("products.SetStock: %w", err)
	}

	s.log.Info("stock_set",
		zap.String("product_id", productID.String()),
		zap.Int("stock", stock),
		zap.String("actor_id", actor.ID.String()))

	return product, nil
}

func (s *InventoryService) StockHistory(ctx context.Context, actor Actor, productID uuid.UUID) ([]domain.StockChange, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	changes, err := s.history.StockHistoryByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("history.StockHistoryByProduct: %w", err)
	}

	return changes, nil
}

func actorRef(actor Actor) *uuid.UUID {
	if actor.ID == uuid.Nil {
		return nil
	}
	id := actor.ID
	return &id
}
