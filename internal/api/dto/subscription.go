package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/subflow/subflow/internal/domain/subscription"
	"github.com/subflow/subflow/internal/types"
	"github.com/subflow/subflow/internal/validator"
)

// SubscribeRequest subscribes the caller to a plan. SubscriberID optionally
// names the owning account (for team-scoped deployments); when empty the
// authenticated user is the subscriber.
type SubscribeRequest struct {
	PlanID       string `json:"plan_id" validate:"required"`
	SubscriberID string `json:"subscriber_id"`
}

func (r *SubscribeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *SubscribeRequest) ToSubscription(ctx context.Context, subscriberID string, now time.Time) *subscription.Subscription {
	return &subscription.Subscription{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		SubscriberID: subscriberID,
		PlanID:       r.PlanID,
		IsCancelled:  false,
		ValidTo:      now.Add(types.BillingCycleDuration),
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

// UpgradeQuoteRequest asks what a switch to the target plan would cost
type UpgradeQuoteRequest struct {
	PlanID       string `json:"plan_id" validate:"required"`
	SubscriberID string `json:"subscriber_id"`
}

func (r *UpgradeQuoteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UpgradeQuoteResponse carries the prorated price for the plan switch. No
// charge is executed; charging is the payment collaborator's concern.
type UpgradeQuoteResponse struct {
	PlanID string          `json:"plan_id"`
	Price  decimal.Decimal `json:"price"`
}

type SubscriptionResponse struct {
	*subscription.Subscription
}
