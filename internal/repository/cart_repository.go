package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

type cartRepository struct {
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{pool: pool}
}

// GetCart joins the live catalog for names and prices. Nothing here is a price
// snapshot; freezing happens only when an order is created.
func (r *cartRepository) GetCart(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	var c domain.Cart

	if userID == uuid.Nil {
		return c, errors.New("userID is empty")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT ci.id, ci.product_id, p.name, p.price, p.currency, ci.quantity, ci.added_at
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.user_id = $1
		 ORDER BY ci.added_at`, userID)
	if err != nil {
		return c, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return c, fmt.Errorf("scanCartItem: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return c, fmt.Errorf("rows.Err: %w", err)
	}

	return domain.Cart{
		UserID: userID,
		Items:  items,
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (domain.CartItem, error) {
	var item domain.CartItem

	if quantity <= 0 {
		return item, errors.New("quantity must be positive")
	}

	row := r.pool.QueryRow(ctx,
		`WITH upserted AS (
		     INSERT INTO cart_items (user_id, product_id, quantity)
		     VALUES ($1, $2, $3)
		     ON CONFLICT (user_id, product_id)
		     DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		     RETURNING id, product_id, quantity, added_at
		 )
		 SELECT u.id, u.product_id, p.name, p.price, p.currency, u.quantity, u.added_at
		 FROM upserted u
		 JOIN products p ON p.id = u.product_id`,
		userID, productID, quantity)

	item, err := scanCartItem(row)
	if err != nil {
		return item, fmt.Errorf("scanCartItem: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (domain.CartItem, error) {
	var item domain.CartItem

	if quantity <= 0 {
		return item, errors.New("quantity must be positive")
	}

	row := r.pool.QueryRow(ctx,
		`WITH updated AS (
		     UPDATE cart_items
		     SET quantity = $1
		     WHERE id = $2 AND user_id = $3
		     RETURNING id, product_id, quantity, added_at
		 )
		 SELECT u.id, u.product_id, p.name, p.price, p.currency, u.quantity, u.added_at
		 FROM updated u
		 JOIN products p ON p.id = u.product_id`,
		quantity, itemID, userID)

	item, err := scanCartItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item, ErrCartItemNotFound
		}
		return item, fmt.Errorf("scanCartItem: %w", err)
	}

	return item, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return false, fmt.Errorf("pool.Exec: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.New("userID is empty")
	}

	if _, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func scanCartItem(row pgx.Row) (domain.CartItem, error) {
	var (
		item         domain.CartItem
		amount       decimal.Decimal
		currencyCode string
	)

	if err := row.Scan(&item.ID, &item.ProductID, &item.ProductName,
		&amount, &currencyCode, &item.Quantity, &item.AddedAt); err != nil {
		return item, err
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return item, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	item.Price = domain.Money{Amount: amount, Currency: parsedCurrency}
	return item, nil
}
