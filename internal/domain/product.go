package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is the live catalog entry. Stock is mutated only through the
// repository's locked read-modify-write path and never goes below zero.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       Money
	Stock       int

	CreatedAt time.Time
	UpdatedAt time.Time
}
