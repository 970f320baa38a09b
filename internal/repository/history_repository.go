package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

// historyRepository only reads. Appends happen inside the transactions that
// perform the audited mutation (UpdateRole, AdjustStock, SetStock); there is
// no way to update or delete a history row through this package.
type historyRepository struct {
	pool *pgxpool.Pool
}

func NewHistory(pool *pgxpool.Pool) port.HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) RoleHistoryByUser(ctx context.Context, userID uuid.UUID) ([]domain.RoleChange, error) {
	if userID == uuid.Nil {
		return nil, errors.New("userID is empty")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, previous_role, new_role, changed_by, changed_at
		 FROM user_role_history
		 WHERE user_id = $1
		 ORDER BY changed_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var changes []domain.RoleChange
	for rows.Next() {
		var (
			c            domain.RoleChange
			previousRole string
			newRole      string
		)

		if err := rows.Scan(&c.ID, &c.UserID, &previousRole, &newRole, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		if c.PreviousRole, err = domain.ToRole(previousRole); err != nil {
			return nil, fmt.Errorf("domain.ToRole[%s]: %w", previousRole, err)
		}
		if c.NewRole, err = domain.ToRole(newRole); err != nil {
			return nil, fmt.Errorf("domain.ToRole[%s]: %w", newRole, err)
		}

		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return changes, nil
}

func (r *historyRepository) StockHistoryByProduct(ctx context.Context, productID uuid.UUID) ([]domain.StockChange, error) {
	if productID == uuid.Nil {
		return nil, errors.New("productID is empty")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, previous_stock, new_stock, changed_by, changed_at
		 FROM product_stock_history
		 WHERE product_id = $1
		 ORDER BY changed_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var changes []domain.StockChange
	for rows.Next() {
		var c domain.StockChange

		if err := rows.Scan(&c.ID, &c.ProductID, &c.PreviousStock, &c.NewStock, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return changes, nil
}
