package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoleChange is an append-only audit row. No update or delete API exists for
// it anywhere in the module.
type RoleChange struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	PreviousRole Role
	NewRole      Role
	ChangedBy    *uuid.UUID // nil when the change was made by the system

	ChangedAt time.Time
}

// StockChange is the append-only trail of administrative stock mutations.
type StockChange struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	PreviousStock int
	NewStock      int
	ChangedBy     *uuid.UUID

	ChangedAt time.Time
}
