package subscription

import (
	"time"

	"github.com/subflow/subflow/internal/types"
)

// Subscription ties a subscriber to a plan. A subscriber holds at most one
// subscription with IsCancelled = false at any time; superseded subscriptions
// are soft-cancelled, never deleted.
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// SubscriberID identifies the owning account. It is an opaque reference
	// supplied by the auth system and may name an individual user or a team.
	SubscriberID string `db:"subscriber_id" json:"subscriber_id"`

	// PlanID is the identifier of the subscribed plan
	PlanID string `db:"plan_id" json:"plan_id"`

	// IsCancelled is set when the subscription is superseded by a newer one
	IsCancelled bool `db:"is_cancelled" json:"is_cancelled"`

	// ValidTo is the end of the cycle granted at subscribe time
	ValidTo time.Time `db:"valid_to" json:"valid_to"`

	types.BaseModel
}
