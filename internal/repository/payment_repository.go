package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
)

const paymentColumns = `id, order_id, user_id, provider, provider_payment_id,
	amount, currency, status, metadata, created_at, updated_at`

type paymentRepository struct {
	pool *pgxpool.Pool
}

func NewPayment(pool *pgxpool.Pool) port.PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) InsertPayment(ctx context.Context, params port.CreatePaymentParams) (domain.Payment, error) {
	var p domain.Payment

	if params.OrderID == uuid.Nil {
		return p, errors.New("orderID is empty")
	}
	if params.UserID == uuid.Nil {
		return p, errors.New("userID is empty")
	}
	if params.Provider == "" {
		return p, errors.New("provider is empty")
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO payments (order_id, user_id, provider, amount, currency, status, metadata)
		 VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		 RETURNING `+paymentColumns,
		params.OrderID, params.UserID, params.Provider,
		params.Amount.Amount, params.Amount.Currency.String(), params.Metadata)

	p, err := scanPayment(row)
	if err != nil {
		return p, fmt.Errorf("scanPayment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) AttachProviderPaymentID(ctx context.Context, paymentID uuid.UUID, providerPaymentID string) (domain.Payment, error) {
	var p domain.Payment

	if paymentID == uuid.Nil {
		return p, errors.New("paymentID is empty")
	}
	if providerPaymentID == "" {
		return p, errors.New("providerPaymentID is empty")
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE payments
		 SET provider_payment_id = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+paymentColumns,
		providerPaymentID, paymentID)

	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, ErrPaymentNotFound
		}
		return p, fmt.Errorf("scanPayment: %w", err)
	}

	return p, nil
}

// ConfirmPayment moves a payment to its terminal outcome. The row lock makes
// the confirmable check and the write a single step, so two racing confirms
// cannot both pass; on success the owning order moves pending -> processing
// before the same transaction commits.
func (r *paymentRepository) ConfirmPayment(ctx context.Context, paymentID uuid.UUID, success bool) (domain.Payment, error) {
	var p domain.Payment

	if paymentID == uuid.Nil {
		return p, errors.New("paymentID is empty")
	}

	payment, err := withTx(ctx, r.pool, func(tx pgx.Tx) (domain.Payment, error) {
		row := tx.QueryRow(ctx,
			`SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, paymentID)

		current, err := scanPayment(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return current, ErrPaymentNotFound
			}
			return current, fmt.Errorf("scanPayment: %w", err)
		}

		if !current.Status.Confirmable() {
			return current, fmt.Errorf("status[%s]: %w", current.Status, domain.ErrPaymentNotConfirmable)
		}

		next := domain.PaymentStatusFailed
		if success {
			next = domain.PaymentStatusSucceeded
		}
		if !current.Status.CanTransition(next) {
			return current, fmt.Errorf("transition %s -> %s: %w", current.Status, next, domain.ErrPaymentNotConfirmable)
		}

		confirmedAt := fmt.Sprintf(`{"confirmed_at": %q}`, time.Now().UTC().Format(time.RFC3339))

		row = tx.QueryRow(ctx,
			`UPDATE payments
			 SET status = $1,
			     metadata = COALESCE(metadata, '{}'::jsonb) || $2::jsonb,
			     updated_at = now()
			 WHERE id = $3
			 RETURNING `+paymentColumns,
			string(next), confirmedAt, paymentID)

		updated, err := scanPayment(row)
		if err != nil {
			return updated, fmt.Errorf("scanPayment: %w", err)
		}

		if next == domain.PaymentStatusSucceeded {
			if err := markOrderProcessing(ctx, tx, updated.OrderID); err != nil {
				return updated, fmt.Errorf("markOrderProcessing: %w", err)
			}
		}

		return updated, nil
	})
	if err != nil {
		return p, fmt.Errorf("withTx: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) GetPayment(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	var p domain.Payment

	if paymentID == uuid.Nil {
		return p, errors.New("paymentID is empty")
	}

	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, paymentID)

	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, ErrPaymentNotFound
		}
		return p, fmt.Errorf("scanPayment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) ListPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Payment, error) {
	return r.queryPayments(ctx, `WHERE order_id = $1`, orderID)
}

func (r *paymentRepository) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	return r.queryPayments(ctx, `WHERE user_id = $1`, userID)
}

func (r *paymentRepository) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return r.queryPayments(ctx, ``)
}

func (r *paymentRepository) queryPayments(ctx context.Context, where string, args ...any) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanPayment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return payments, nil
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var (
		p                 domain.Payment
		providerPaymentID *string
		amount            decimal.Decimal
		currencyCode      string
		status            string
	)

	if err := row.Scan(&p.ID, &p.OrderID, &p.UserID, &p.Provider, &providerPaymentID,
		&amount, &currencyCode, &status, &p.Metadata, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, err
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return p, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	paymentStatus, err := domain.ToPaymentStatus(status)
	if err != nil {
		return p, fmt.Errorf("domain.ToPaymentStatus[%s]: %w", status, err)
	}

	p.ProviderPaymentID = lo.FromPtr(providerPaymentID)
	p.Amount = domain.Money{Amount: amount, Currency: parsedCurrency}
	p.Status = paymentStatus
	return p, nil
}
