package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

type UserService struct {
	users   port.UserRepository
	history port.HistoryRepository
	log     *zap.Logger
}

func NewUserService(users port.UserRepository, history port.HistoryRepository, log *zap.Logger) *UserService {
	return &UserService{
		users:   users,
		history: history,
		log:     log.With(zap.String("component", "user_service")),
	}
}

func (s *UserService) GetUser(ctx context.Context, actor Actor, userID uuid.UUID) (domain.User, error) {
	if !actor.IsAdmin() && actor.ID != userID {
		return domain.User{}, domain.ErrForbidden
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.GetUser: %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor Actor) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("users.ListUsers: %w", err)
	}

	return users, nil
}

// ChangeRole is audited: a genuine change appends exactly one history row; a
// same-role request succeeds silently and records nothing.
func (s *UserService) ChangeRole(ctx context.Context, actor Actor, userID uuid.UUID, newRole domain.Role) (domain.User, error) {
	var u domain.User

	if !actor.IsAdmin() {
		return u, domain.ErrForbidden
	}

	user, err := s.users.UpdateRole(ctx, userID, newRole, actorRef(actor))
	if err != nil {
		return u, fmt.Errorf("users.UpdateRole: %w", err)
	}

	s.log.Info("role_changed",
		zap.String("user_id", userID.String()),
		zap.String("role", string(newRole)),
		zap.String("actor_id", actor.ID.String()))

	return user, nil
}

func (s *UserService) RoleHistory(ctx context.Context, actor Actor, userID uuid.UUID) ([]domain.RoleChange, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	changes, err := s.history.RoleHistoryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("history.RoleHistoryByUser: %w", err)
	}

	return changes, nil
}
