package service

import (
	"github.com/google/uuid"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
)

// Actor is the authenticated identity supplied by the auth middleware.
// The services trust it and do not re-verify credentials.
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}
