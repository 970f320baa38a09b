package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var validRoles = map[Role]struct{}{
	RoleUser:  {},
	RoleAdmin: {},
}

func ToRole(s string) (Role, error) {
	role := Role(s)
	if _, ok := validRoles[role]; ok {
		return role, nil
	}

	return "", errors.New("invalid role")
}

type User struct {
	ID       uuid.UUID
	Username string
	Email    string
	Role     Role

	CreatedAt time.Time
}
