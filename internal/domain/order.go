package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Status          OrderStatus
	TotalAmount     Money
	ShippingAddress json.RawMessage
	IdempotencyKey  string
	Items           []OrderItem

	CreatedAt time.Time
}

// OrderItem captures the unit price as charged. Later catalog price changes
// never alter it, so the order total stays fixed after creation.
type OrderItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   Money

	CreatedAt time.Time
}

// OrderLine is a requested line item before validation against the catalog.
// Pricing is authoritative from the products table inside the creation
// transaction; client-supplied prices are never trusted.
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}
