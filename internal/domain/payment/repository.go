package payment

import (
	"context"
)

// Repository defines the interface for payment persistence. Create exists for
// the external payment collaborator's write path; the billing core itself only
// reads.
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// GetLatestSucceeded returns the subscriber's most recent succeeded
	// payment, marked ErrNotFound when the subscriber never paid.
	GetLatestSucceeded(ctx context.Context, subscriberID string) (*Payment, error)
}
