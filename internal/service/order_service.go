package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

type OrderService struct {
	orders port.OrderRepository
	log    *zap.Logger
}

func NewOrderService(orders port.OrderRepository, log *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		log:    log.With(zap.String("component", "order_service")),
	}
}

type CreateOrderInput struct {
	Lines           []domain.OrderLine
	ShippingAddress json.RawMessage
	IdempotencyKey  string
}

// CreateOrder validates the request shape and delegates to the transactional
// creation path. Upstream validation already checked field presence; quantity
// positivity and product existence are re-checked defensively below.
func (s *OrderService) CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (domain.Order, error) {
	var o domain.Order

	if actor.ID == uuid.Nil {
		return o, errors.New("actor id is required")
	}
	if len(input.Lines) == 0 {
		return o, errors.New("items must be a non-empty list")
	}

	order, err := s.orders.CreateOrder(ctx, port.CreateOrderParams{
		UserID:          actor.ID,
		Lines:           input.Lines,
		ShippingAddress: input.ShippingAddress,
		IdempotencyKey:  input.IdempotencyKey,
	})
	if err != nil {
		s.log.Warn("create_order_failed",
			zap.String("user_id", actor.ID.String()),
			zap.Error(err))
		return o, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	s.log.Info("create_order_success",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("total", order.TotalAmount.String()))

	return order, nil
}

// GetOrder enforces ownership: non-admin callers only see their own orders.
func (s *OrderService) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	if !actor.IsAdmin() && order.UserID != actor.ID {
		return domain.Order{}, domain.ErrForbidden
	}

	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, actor Actor) ([]domain.Order, error) {
	if actor.ID == uuid.Nil {
		return nil, errors.New("actor id is required")
	}

	orders, err := s.orders.SearchOrders(ctx, domain.OrderFilter{
		UserIDs: []uuid.UUID{actor.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context, actor Actor) ([]domain.Order, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus is the administrative override. It validates enum
// membership only; it is deliberately decoupled from the payment outcome so
// manual fulfilment stays possible.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	var o domain.Order

	if !actor.IsAdmin() {
		return o, domain.ErrForbidden
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return o, fmt.Errorf("orders.UpdateStatus: %w", err)
	}

	s.log.Info("order_status_updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", string(status)),
		zap.String("actor_id", actor.ID.String()))

	return order, nil
}
