package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
)

type UserRepository interface {
	GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)

	InsertUser(ctx context.Context, user domain.User) (domain.User, error)

	// UpdateRole changes the role under a row lock and appends exactly one
	// role history row in the same transaction. When the role is unchanged it
	// returns the user untouched and records nothing.
	UpdateRole(ctx context.Context, userID uuid.UUID, newRole domain.Role, changedBy *uuid.UUID) (domain.User, error)
}
