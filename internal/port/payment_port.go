package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
)

type CreatePaymentParams struct {
	OrderID  uuid.UUID
	UserID   uuid.UUID
	Provider string
	Amount   domain.Money
	Metadata json.RawMessage
}

type PaymentRepository interface {
	InsertPayment(ctx context.Context, params CreatePaymentParams) (domain.Payment, error)

	// AttachProviderPaymentID records the provider-side reference once the
	// provider has acknowledged the intent.
	AttachProviderPaymentID(ctx context.Context, paymentID uuid.UUID, providerPaymentID string) (domain.Payment, error)

	// ConfirmPayment applies the terminal outcome under a row lock. It is
	// legal only from pending or requires_action; on success the owning order
	// moves pending -> processing in the same transaction.
	ConfirmPayment(ctx context.Context, paymentID uuid.UUID, success bool) (domain.Payment, error)

	GetPayment(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error)
	ListPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Payment, error)
	ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}
