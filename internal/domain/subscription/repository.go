package subscription

import (
	"context"
)

// Repository defines the interface for subscription persistence
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	// GetActive returns the subscriber's current non-cancelled subscription,
	// marked ErrNotFound when there is none.
	GetActive(ctx context.Context, subscriberID string) (*Subscription, error)
	// CancelActive soft-cancels every non-cancelled subscription of the
	// subscriber. Cancelling zero rows is not an error.
	CancelActive(ctx context.Context, subscriberID string) error
	// ListBySubscriber returns all subscriptions of a subscriber, newest first
	ListBySubscriber(ctx context.Context, subscriberID string) ([]*Subscription, error)
}
