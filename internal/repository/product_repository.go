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
	ErrProductNotFound = errors.New("product not found")
)

const productColumns = `id, name, description, price, currency, stock, created_at, updated_at`

type productRepository struct {
	pool *pgxpool.Pool
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, ErrProductNotFound
		}
		return p, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var p domain.Product

	if product.Stock < 0 {
		return p, errors.New("stock must not be negative")
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price, currency, stock)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+productColumns,
		product.Name, product.Description, product.Price.Amount, product.Price.Currency.String(), product.Stock)

	p, err := scanProduct(row)
	if err != nil {
		return p, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var p domain.Product

	if product.ID == uuid.Nil {
		return p, errors.New("productID is empty")
	}

	// Stock is deliberately absent here: it moves only through the locked path.
	row := r.pool.QueryRow(ctx,
		`UPDATE products
		 SET name = $1, description = $2, price = $3, currency = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING `+productColumns,
		product.Name, product.Description, product.Price.Amount, product.Price.Currency.String(), product.ID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, ErrProductNotFound
		}
		return p, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return errors.New("productID is empty")
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) AdjustStock(ctx context.Context, productID uuid.UUID, delta int, actorID *uuid.UUID) (domain.Product, error) {
	product, err := withTx(ctx, r.pool, func(tx pgx.Tx) (domain.Product, error) {
		previous, updated, err := adjustStockTx(ctx, tx, productID, delta)
		if err != nil {
			return updated, err
		}

		if updated.Stock != previous {
			if err := insertStockChange(ctx, tx, productID, previous, updated.Stock, actorID); err != nil {
				return updated, fmt.Errorf("insertStockChange: %w", err)
			}
		}

		return updated, nil
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("withTx: %w", err)
	}

	return product, nil
}

func (r *productRepository) SetStock(ctx context.Context, productID uuid.UUID, stock int, actorID *uuid.UUID) (domain.Product, error) {
	var p domain.Product

	if stock < 0 {
		return p, errors.New("stock must not be negative")
	}

	product, err := withTx(ctx, r.pool, func(tx pgx.Tx) (domain.Product, error) {
		current, err := lockProduct(ctx, tx, productID)
		if err != nil {
			return domain.Product{}, err
		}

		previous := current.Stock
		if stock == previous {
			return current, nil
		}

		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = $1, updated_at = now() WHERE id = $2`,
			stock, productID); err != nil {
			return domain.Product{}, fmt.Errorf("tx.Exec update stock: %w", err)
		}
		current.Stock = stock

		if err := insertStockChange(ctx, tx, productID, previous, stock, actorID); err != nil {
			return domain.Product{}, fmt.Errorf("insertStockChange: %w", err)
		}

		return current, nil
	})
	if err != nil {
		return p, fmt.Errorf("withTx: %w", err)
	}

	return product, nil
}

// lockProduct reads the product row under FOR UPDATE. Concurrent adjusters of
// the same product block here until the holder's transaction finishes; other
// products are unaffected.
func lockProduct(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (domain.Product, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, ErrProductNotFound
		}
		return p, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

// adjustStockTx is the single read-modify-write path for stock, shared by the
// administrative delta operation and by order creation. The floor-at-zero check
// happens while the row lock is held. Returns the stock before the change and
// the product after it.
func adjustStockTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, delta int) (int, domain.Product, error) {
	p, err := lockProduct(ctx, tx, productID)
	if err != nil {
		return 0, p, err
	}

	previous := p.Stock

	newStock := p.Stock + delta
	if newStock < 0 {
		return previous, p, domain.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Requested:   -delta,
			Available:   p.Stock,
		}
	}

	if newStock != previous {
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = $1, updated_at = now() WHERE id = $2`,
			newStock, productID); err != nil {
			return previous, p, fmt.Errorf("tx.Exec update stock: %w", err)
		}
	}

	p.Stock = newStock
	return previous, p, nil
}

func insertStockChange(ctx context.Context, tx pgx.Tx, productID uuid.UUID, previous, next int, changedBy *uuid.UUID) error {
	if _, err := tx.Exec(ctx,
		`INSERT INTO product_stock_history (product_id, previous_stock, new_stock, changed_by)
		 VALUES ($1, $2, $3, $4)`,
		productID, previous, next, changedBy); err != nil {
		return fmt.Errorf("tx.Exec insert history: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p            domain.Product
		amount       decimal.Decimal
		currencyCode string
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Description, &amount, &currencyCode,
		&p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, err
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return p, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	p.Price = domain.Money{Amount: amount, Currency: parsedCurrency}
	return p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}
