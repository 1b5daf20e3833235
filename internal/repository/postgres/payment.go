package postgres

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/subflow/subflow/internal/domain/payment"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/postgres"
	"github.com/subflow/subflow/internal/types"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (
			id, subscription_id, subscriber_id, amount_paid, payment_status,
			paid_at, status, created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, query,
		p.ID, p.SubscriptionID, p.SubscriberID, p.AmountPaid, p.PaymentStatus,
		p.PaidAt, p.Status, p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record payment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	query := `SELECT * FROM payments WHERE id = $1`

	var p payment.Payment
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Payment with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *paymentRepository) GetLatestSucceeded(ctx context.Context, subscriberID string) (*payment.Payment, error) {
	query := `
		SELECT * FROM payments
		WHERE subscriber_id = $1 AND payment_status = $2
		ORDER BY paid_at DESC
		LIMIT 1
	`

	var p payment.Payment
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &p, query, subscriberID, types.PaymentStatusSucceeded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("Subscriber has no confirmed payment").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get latest payment").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}
