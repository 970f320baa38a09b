package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

type PaymentService struct {
	payments port.PaymentRepository
	orders   port.OrderRepository
	log      *zap.Logger
}

func NewPaymentService(payments port.PaymentRepository, orders port.OrderRepository, log *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		orders:   orders,
		log:      log.With(zap.String("component", "payment_service")),
	}
}

// CreateIntent records a payment attempt against an order the caller owns.
// For the mock provider it attaches a synthetic provider reference and client
// secret immediately; the state-transition shape matches what a real provider
// integration would produce, so swapping providers changes only that step.
func (s *PaymentService) CreateIntent(ctx context.Context, actor Actor, orderID uuid.UUID, provider string) (domain.PaymentIntent, error) {
	var intent domain.PaymentIntent

	if provider == "" {
		provider = domain.ProviderMock
	}
	if provider != domain.ProviderMock {
		return intent, domain.ErrUnsupportedProvider
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return intent, fmt.Errorf("orders.GetOrder: %w", err)
	}
	if order.UserID != actor.ID {
		return intent, domain.ErrForbidden
	}
	if order.Status == domain.OrderStatusCancelled {
		return intent, domain.ErrOrderCancelled
	}

	metadata, err := json.Marshal(map[string]string{"order_status": string(order.Status)})
	if err != nil {
		return intent, fmt.Errorf("json.Marshal: %w", err)
	}

	payment, err := s.payments.InsertPayment(ctx, port.CreatePaymentParams{
		OrderID:  orderID,
		UserID:   actor.ID,
		Provider: provider,
		Amount:   order.TotalAmount,
		Metadata: metadata,
	})
	if err != nil {
		return intent, fmt.Errorf("payments.InsertPayment: %w", err)
	}

	payment, err = s.payments.AttachProviderPaymentID(ctx, payment.ID, "mock_"+payment.ID.String())
	if err != nil {
		return intent, fmt.Errorf("payments.AttachProviderPaymentID: %w", err)
	}

	s.log.Info("payment_intent_created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("provider", provider),
		zap.String("amount", payment.Amount.String()))

	return domain.PaymentIntent{
		Payment:      payment,
		ClientSecret: "mock_secret_" + payment.ID.String(),
	}, nil
}

// ConfirmPayment applies the mock provider's outcome. Confirming a payment
// that already reached a terminal state is rejected, not silently ignored.
func (s *PaymentService) ConfirmPayment(ctx context.Context, actor Actor, paymentID uuid.UUID, success bool) (domain.Payment, error) {
	var p domain.Payment

	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return p, fmt.Errorf("payments.GetPayment: %w", err)
	}
	if payment.UserID != actor.ID && !actor.IsAdmin() {
		return p, domain.ErrForbidden
	}
	if payment.Provider != domain.ProviderMock {
		return p, domain.ErrUnsupportedProvider
	}

	confirmed, err := s.payments.ConfirmPayment(ctx, paymentID, success)
	if err != nil {
		return p, fmt.Errorf("payments.ConfirmPayment: %w", err)
	}

	s.log.Info("payment_confirmed",
		zap.String("payment_id", paymentID.String()),
		zap.String("order_id", confirmed.OrderID.String()),
		zap.String("status", string(confirmed.Status)))

	return confirmed, nil
}

func (s *PaymentService) PaymentsForOrder(ctx context.Context, actor Actor, orderID uuid.UUID) ([]domain.Payment, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders.GetOrder: %w", err)
	}
	if !actor.IsAdmin() && order.UserID != actor.ID {
		return nil, domain.ErrForbidden
	}

	payments, err := s.payments.ListPaymentsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("payments.ListPaymentsByOrder: %w", err)
	}

	return payments, nil
}

func (s *PaymentService) MyPayments(ctx context.Context, actor Actor) ([]domain.Payment, error) {
	payments, err := s.payments.ListPaymentsByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("payments.ListPaymentsByUser: %w", err)
	}

	return payments, nil
}

func (s *PaymentService) AllPayments(ctx context.Context, actor Actor) ([]domain.Payment, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	payments, err := s.payments.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("payments.ListPayments: %w", err)
	}

	return payments, nil
}
