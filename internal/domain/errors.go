package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrForbidden reports an ownership mismatch between the caller and the
	// entity they tried to touch.
	ErrForbidden = errors.New("forbidden")

	// ErrOrderCancelled rejects payment activity against a cancelled order.
	ErrOrderCancelled = errors.New("order cancelled")

	// ErrPaymentNotConfirmable rejects confirmation of a payment that is
	// already in a terminal state or otherwise not awaiting an outcome.
	ErrPaymentNotConfirmable = errors.New("payment not in confirmable state")

	ErrUnsupportedProvider = errors.New("unsupported payment provider")
)

// InsufficientStockError names the offending product so callers can report
// which line of a multi-item order failed.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (%s): requested %d, available %d",
		e.ProductID, e.ProductName, e.Requested, e.Available)
}
