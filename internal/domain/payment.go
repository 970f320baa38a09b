package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Payment providers. Only the mock provider is wired in; it produces the same
// state-transition shape a real integration would, so swapping providers later
// changes only the attachment step.
const (
	ProviderMock = "mock"
)

type Payment struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	UserID            uuid.UUID
	Provider          string
	ProviderPaymentID string
	Amount            Money
	Status            PaymentStatus
	Metadata          json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentIntent is what the caller receives after creating a payment: the
// persisted record plus the provider-side client secret used to confirm it.
type PaymentIntent struct {
	Payment      Payment
	ClientSecret string
}
