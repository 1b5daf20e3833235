package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/subflow/subflow/internal/domain/subscription"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/postgres"
	"github.com/subflow/subflow/internal/types"
)

type subscriptionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, subscriber_id, plan_id, is_cancelled, valid_to,
			status, created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, query,
		sub.ID, sub.SubscriberID, sub.PlanID, sub.IsCancelled, sub.ValidTo,
		sub.Status, sub.CreatedAt, sub.UpdatedAt, sub.CreatedBy, sub.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// partial unique index on (subscriber_id) WHERE NOT is_cancelled:
			// a concurrent subscribe won the race for the active slot
			return ierr.WithError(err).
				WithHint("Subscriber already has an active subscription").
				WithReportableDetails(map[string]any{"subscriber_id": sub.SubscriberID}).
				Mark(ierr.ErrInvalidOperation)
		}
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	query := `SELECT * FROM subscriptions WHERE id = $1`

	var sub subscription.Subscription
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &sub, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Subscription with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetActive(ctx context.Context, subscriberID string) (*subscription.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE subscriber_id = $1 AND is_cancelled = false
	`

	var sub subscription.Subscription
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &sub, query, subscriberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("Subscriber has no active subscription").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get active subscription").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) CancelActive(ctx context.Context, subscriberID string) error {
	query := `
		UPDATE subscriptions
		SET is_cancelled = true, updated_at = $2, updated_by = $3
		WHERE subscriber_id = $1 AND is_cancelled = false
	`

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, query,
		subscriberID, time.Now().UTC(), types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to cancel active subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID string) ([]*subscription.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE subscriber_id = $1
		ORDER BY created_at DESC
	`

	subs := make([]*subscription.Subscription, 0)
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &subs, query, subscriberID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}
