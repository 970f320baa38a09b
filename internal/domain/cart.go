package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	UserID uuid.UUID
	Items  []CartItem
}

// CartItem carries the live catalog name and price at read time. Prices are
// frozen into order items only when an order is created, never here.
type CartItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Price       Money
	Quantity    int

	AddedAt time.Time
}
