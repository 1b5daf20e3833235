package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/subflow/subflow/internal/types"
)

// Payment records a confirmed charge against a subscription. It is written by
// the external payment collaborator and consumed read-only by the billing
// logic: the most recent succeeded payment per subscriber marks the start of
// the current paid cycle and the price actually paid for it, which may differ
// from the plan's current price if the plan was repriced since.
type Payment struct {
	// ID is the unique identifier for the payment
	ID string `db:"id" json:"id"`

	// SubscriptionID is the subscription the payment was made for
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`

	// SubscriberID is denormalised from the subscription for cycle lookups
	SubscriberID string `db:"subscriber_id" json:"subscriber_id"`

	// AmountPaid is the amount actually charged
	AmountPaid decimal.Decimal `db:"amount_paid" json:"amount_paid"`

	// PaymentStatus is the confirmation state of the charge
	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`

	// PaidAt marks the start of the paid cycle
	PaidAt time.Time `db:"paid_at" json:"paid_at"`

	types.BaseModel
}

// CycleEnd derives the end of the paid cycle started by this payment
func (p *Payment) CycleEnd() time.Time {
	return p.PaidAt.Add(types.BillingCycleDuration)
}
