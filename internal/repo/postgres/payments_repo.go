package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swagatham/donation-api/internal/domain"
)

type PaymentsRepo interface {
	// Record inserts the payment and its audit-log entry in one transaction.
	Record(ctx context.Context, phone string, in *domain.PaymentRequest) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
}

type PaymentsRepoImpl struct{ pool *pgxpool.Pool }

func NewPaymentsRepo(pool *pgxpool.Pool) *PaymentsRepoImpl { return &PaymentsRepoImpl{pool: pool} }

func (r *PaymentsRepoImpl) Record(ctx context.Context, phone string, in *domain.PaymentRequest) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin payment record: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var userID int64
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE phone=$1`, phone).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO payments (user_id, amount, razorpay_payment_id, status, tax_exemption, currency)
VALUES ($1, $2, $3, 'success', $4, 'INR')`,
		userID, in.Amount, in.RazorpayPaymentID, in.TaxExemption,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO audit_log (user_id, action, description)
VALUES ($1, 'payment', $2)`,
		userID, fmt.Sprintf("Payment of ₹%s recorded with ID: %s", in.Amount, in.RazorpayPaymentID),
	)
	if err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit payment record: %w", err)
	}
	return nil
}

func (r *PaymentsRepoImpl) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	const q = `
SELECT amount::text, razorpay_payment_id, status, currency, tax_exemption, payment_date
FROM payments WHERE user_id=$1 ORDER BY payment_date DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.Amount, &p.RazorpayPaymentID, &p.Status, &p.Currency, &p.TaxExemption, &p.PaymentDate); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
