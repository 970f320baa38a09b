package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

const userColumns = `id, username, email, role, created_at`

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var u domain.User

	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, ErrUserNotFound
		}
		return u, fmt.Errorf("scanUser: %w", err)
	}

	return u, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanUser: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return users, nil
}

func (r *userRepository) InsertUser(ctx context.Context, user domain.User) (domain.User, error) {
	var u domain.User

	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	if _, err := domain.ToRole(string(role)); err != nil {
		return u, fmt.Errorf("domain.ToRole[%s]: %w", role, err)
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, role)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		user.Username, user.Email, string(role))

	u, err := scanUser(row)
	if err != nil {
		return u, fmt.Errorf("scanUser: %w", err)
	}

	return u, nil
}

// UpdateRole locks the user row so the role cannot change underneath the
// audit write. A same-role request commits nothing and records nothing; a
// genuine change produces exactly one history row in the same transaction.
func (r *userRepository) UpdateRole(ctx context.Context, userID uuid.UUID, newRole domain.Role, changedBy *uuid.UUID) (domain.User, error) {
	var u domain.User

	if userID == uuid.Nil {
		return u, errors.New("userID is empty")
	}
	if _, err := domain.ToRole(string(newRole)); err != nil {
		return u, fmt.Errorf("domain.ToRole[%s]: %w", newRole, err)
	}

	user, err := withTx(ctx, r.pool, func(tx pgx.Tx) (domain.User, error) {
		row := tx.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID)

		current, err := scanUser(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return current, ErrUserNotFound
			}
			return current, fmt.Errorf("scanUser: %w", err)
		}

		if current.Role == newRole {
			return current, nil
		}

		previousRole := current.Role

		if _, err := tx.Exec(ctx,
			`UPDATE users SET role = $1 WHERE id = $2`, string(newRole), userID); err != nil {
			return current, fmt.Errorf("tx.Exec update role: %w", err)
		}
		current.Role = newRole

		if _, err := tx.Exec(ctx,
			`INSERT INTO user_role_history (user_id, previous_role, new_role, changed_by)
			 VALUES ($1, $2, $3, $4)`,
			userID, string(previousRole), string(newRole), changedBy); err != nil {
			return current, fmt.Errorf("tx.Exec insert history: %w", err)
		}

		return current, nil
	})
	if err != nil {
		return u, fmt.Errorf("withTx: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u    domain.User
		role string
	)

	if err := row.Scan(&u.ID, &u.Username, &u.Email, &role, &u.CreatedAt); err != nil {
		return u, err
	}

	parsedRole, err := domain.ToRole(role)
	if err != nil {
		return u, fmt.Errorf("domain.ToRole[%s]: %w", role, err)
	}

	u.Role = parsedRole
	return u, nil
}
