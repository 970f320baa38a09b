package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

const uniqueViolationCode = "23505"

type orderRepository struct {
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{pool: pool}
}

// CreateOrder turns the requested lines into a committed order. All product
// rows are locked in ascending ID order, stock is decremented through the same
// locked path the inventory ledger uses, prices are snapshotted into the items,
// and the user's cart is cleared. Any failure rolls the whole transaction back;
// no partial order or partial decrement is ever observable.
func (r *orderRepository) CreateOrder(ctx context.Context, params port.CreateOrderParams) (domain.Order, error) {
	var o domain.Order

	if params.UserID == uuid.Nil {
		return o, errors.New("userID is empty")
	}

	lines, err := mergeOrderLines(params.Lines)
	if err != nil {
		return o, err
	}

	orderID, err := withTx(ctx, r.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		if params.IdempotencyKey != "" {
			existingID, err := findOrderByIdempotencyKey(ctx, tx, params.UserID, params.IdempotencyKey)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return uuid.Nil, fmt.Errorf("findOrderByIdempotencyKey: %w", err)
			}
			if err == nil {
				return existingID, nil
			}
		}

		total := decimal.Zero
		var orderCurrency currency.Unit

		type pricedLine struct {
			productID uuid.UUID
			quantity  int
			unitPrice decimal.Decimal
		}
		priced := make([]pricedLine, 0, len(lines))

		// Lines are already sorted by product ID, so two overlapping orders
		// acquire their row locks in the same sequence and cannot deadlock.
		for _, line := range lines {
			_, product, err := adjustStockTx(ctx, tx, line.ProductID, -line.Quantity)
			if err != nil {
				if errors.Is(err, ErrProductNotFound) {
					return uuid.Nil, fmt.Errorf("product %s: %w", line.ProductID, ErrProductNotFound)
				}
				return uuid.Nil, err
			}

			if orderCurrency == (currency.Unit{}) {
				orderCurrency = product.Price.Currency
			} else if orderCurrency.String() != product.Price.Currency.String() {
				return uuid.Nil, fmt.Errorf("mixed currencies in order: %s vs %s",
					orderCurrency, product.Price.Currency)
			}

			total = total.Add(product.Price.Amount.Mul(decimal.NewFromInt(int64(line.Quantity))))
			priced = append(priced, pricedLine{
				productID: line.ProductID,
				quantity:  line.Quantity,
				unitPrice: product.Price.Amount,
			})
		}

		var key *string
		if params.IdempotencyKey != "" {
			key = lo.ToPtr(params.IdempotencyKey)
		}

		var orderID uuid.UUID
		if err := tx.QueryRow(ctx,
			`INSERT INTO orders (user_id, status, total_amount, currency, shipping_address, idempotency_key)
			 VALUES ($1, 'pending', $2, $3, $4, $5)
			 RETURNING id`,
			params.UserID, total, orderCurrency.String(), params.ShippingAddress, key,
		).Scan(&orderID); err != nil {
			return uuid.Nil, fmt.Errorf("insert order: %w", err)
		}

		for _, pl := range priced {
			if _, err := tx.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, unit_price)
				 VALUES ($1, $2, $3, $4)`,
				orderID, pl.productID, pl.quantity, pl.unitPrice); err != nil {
				return uuid.Nil, fmt.Errorf("insert order item: %w", err)
			}
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM cart_items WHERE user_id = $1`, params.UserID); err != nil {
			return uuid.Nil, fmt.Errorf("clear cart: %w", err)
		}

		return orderID, nil
	})
	if err != nil {
		// Two racing requests with the same idempotency key both miss the
		// lookup; the loser hits the unique index and replays the winner.
		if params.IdempotencyKey != "" && isUniqueViolation(err) {
			replayID, lookupErr := findOrderByIdempotencyKey(ctx, r.pool, params.UserID, params.IdempotencyKey)
			if lookupErr == nil {
				return r.GetOrder(ctx, replayID)
			}
		}
		return o, fmt.Errorf("withTx: %w", err)
	}

	return r.GetOrder(ctx, orderID)
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, errors.New("orderID is empty")
	}

	orders, err := r.queryOrders(ctx, `WHERE o.id = $1`, orderID)
	if err != nil {
		return o, fmt.Errorf("queryOrders: %w", err)
	}

	if len(orders) == 0 {
		return o, ErrOrderNotFound
	}

	return orders[0], nil
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	var statuses []string
	for _, status := range filter.Statuses {
		statuses = append(statuses, string(status))
	}

	var createdAfter, createdBefore *time.Time
	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	orders, err := r.queryOrders(ctx,
		`WHERE ($1::uuid[] IS NULL OR o.id = ANY($1))
		   AND ($2::uuid[] IS NULL OR o.user_id = ANY($2))
		   AND ($3::text[] IS NULL OR o.status = ANY($3))
		   AND ($4::timestamptz IS NULL OR o.created_at >= $4)
		   AND ($5::timestamptz IS NULL OR o.created_at <= $5)`,
		nilSliceIfEmpty(filter.IDs),
		nilSliceIfEmpty(filter.UserIDs),
		nilSliceIfEmpty(statuses),
		createdAfter,
		createdBefore,
	)
	if err != nil {
		return nil, fmt.Errorf("queryOrders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.queryOrders(ctx, ``)
	if err != nil {
		return nil, fmt.Errorf("queryOrders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, errors.New("orderID is empty")
	}
	if status == "" {
		return o, errors.New("status is empty")
	}
	if _, err := domain.ToOrderStatus(string(status)); err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, string(status), orderID)
	if err != nil {
		return o, fmt.Errorf("pool.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return o, ErrOrderNotFound
	}

	return r.GetOrder(ctx, orderID)
}

// markOrderProcessing applies the payment-driven pending -> processing move.
// The status guard keeps an administratively advanced order from regressing.
func markOrderProcessing(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	if _, err := tx.Exec(ctx,
		`UPDATE orders SET status = 'processing' WHERE id = $1 AND status = 'pending'`,
		orderID); err != nil {
		return fmt.Errorf("tx.Exec: %w", err)
	}

	return nil
}

const orderSelect = `
	SELECT o.id, o.user_id, o.status, o.total_amount, o.currency,
	       o.shipping_address, o.idempotency_key, o.created_at,
	       oi.id, oi.product_id, p.name, oi.quantity, oi.unit_price, oi.created_at
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON p.id = oi.product_id
`

func (r *orderRepository) queryOrders(ctx context.Context, where string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		orderSelect+where+` ORDER BY o.created_at DESC, oi.created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var (
		orders []domain.Order
		index  = map[uuid.UUID]int{}
	)

	for rows.Next() {
		var (
			o            domain.Order
			status       string
			userID       *uuid.UUID
			totalAmount  decimal.Decimal
			currencyCode string
			key          *string

			itemID        *uuid.UUID
			itemProductID *uuid.UUID
			itemName      *string
			itemQuantity  *int
			itemUnitPrice *decimal.Decimal
			itemCreatedAt *time.Time
		)

		if err := rows.Scan(&o.ID, &userID, &status, &totalAmount, &currencyCode,
			&o.ShippingAddress, &key, &o.CreatedAt,
			&itemID, &itemProductID, &itemName, &itemQuantity, &itemUnitPrice, &itemCreatedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		parsedCurrency, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}

		pos, exists := index[o.ID]
		if !exists {
			orderStatus, err := domain.ToOrderStatus(status)
			if err != nil {
				return nil, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
			}

			o.Status = orderStatus
			o.UserID = lo.FromPtr(userID)
			o.TotalAmount = domain.Money{Amount: totalAmount, Currency: parsedCurrency}
			o.IdempotencyKey = lo.FromPtr(key)

			orders = append(orders, o)
			pos = len(orders) - 1
			index[o.ID] = pos
		}

		if itemID == nil {
			continue
		}

		orders[pos].Items = append(orders[pos].Items, domain.OrderItem{
			ID:          *itemID,
			ProductID:   lo.FromPtr(itemProductID),
			ProductName: lo.FromPtr(itemName),
			Quantity:    lo.FromPtr(itemQuantity),
			UnitPrice:   domain.Money{Amount: lo.FromPtr(itemUnitPrice), Currency: parsedCurrency},
			CreatedAt:   lo.FromPtr(itemCreatedAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return orders, nil
}

// mergeOrderLines validates quantities, merges duplicate product lines by
// summing them, and sorts by product ID so locks are always acquired in a
// stable order.
func mergeOrderLines(lines []domain.OrderLine) ([]domain.OrderLine, error) {
	if len(lines) == 0 {
		return nil, errors.New("no items in order")
	}

	merged := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, errors.New("productID is empty")
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity for product %s", line.ProductID)
		}
		merged[line.ProductID] += line.Quantity
	}

	result := make([]domain.OrderLine, 0, len(merged))
	for productID, quantity := range merged {
		result = append(result, domain.OrderLine{ProductID: productID, Quantity: quantity})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductID.String() < result[j].ProductID.String()
	})

	return result, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func findOrderByIdempotencyKey(ctx context.Context, q rowQuerier, userID uuid.UUID, key string) (uuid.UUID, error) {
	var orderID uuid.UUID
	err := q.QueryRow(ctx,
		`SELECT id FROM orders WHERE user_id = $1 AND idempotency_key = $2`,
		userID, key).Scan(&orderID)
	return orderID, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
