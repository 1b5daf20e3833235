package service

import (
	"context"
	"time"

	"github.com/subflow/subflow/internal/api/dto"
	"github.com/subflow/subflow/internal/domain/proration"
)

// SubscriptionService orchestrates per-subscriber plan switches
type SubscriptionService interface {
	// Subscribe cancels any active subscription of the subscriber and starts
	// a new one on the given plan, as one atomic unit.
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (*dto.SubscriptionResponse, error)

	// QuoteUpgrade computes the prorated price of switching to the target
	// plan. Read only; nothing is charged or mutated.
	QuoteUpgrade(ctx context.Context, req dto.UpgradeQuoteRequest) (*dto.UpgradeQuoteResponse, error)

	// GetActiveSubscription returns the caller's current subscription
	GetActiveSubscription(ctx context.Context, subscriberID string) (*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	ServiceParams
	billing BillingService
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{
		ServiceParams: params,
		billing:       NewBillingService(params),
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, req dto.SubscribeRequest) (*dto.SubscriptionResponse, error) {
	subscriberID, err := resolveSubscriberID(ctx, req.SubscriberID)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// surfaces ErrNotFound for unknown plans before any mutation
	if _, err := s.PlanRepo.Get(ctx, req.PlanID); err != nil {
		return nil, err
	}

	sub := req.ToSubscription(ctx, subscriberID, time.Now().UTC())

	// Cancel and insert commit together or not at all, so the subscriber can
	// never end up with two active subscriptions or none after having one.
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.SubRepo.CancelActive(ctx, subscriberID); err != nil {
			return err
		}
		return s.SubRepo.Create(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("subscribed",
		"subscriber_id", subscriberID,
		"plan_id", req.PlanID,
		"subscription_id", sub.ID,
	)

	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) QuoteUpgrade(ctx context.Context, req dto.UpgradeQuoteRequest) (*dto.UpgradeQuoteResponse, error) {
	subscriberID, err := resolveSubscriberID(ctx, req.SubscriberID)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	targetPlan, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	cycle, err := s.billing.GetCurrentCycle(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	// No confirmed cycle to credit: the switch costs the full plan price
	if cycle == nil {
		return &dto.UpgradeQuoteResponse{
			PlanID: targetPlan.ID,
			Price:  targetPlan.Price,
		}, nil
	}

	result, err := s.ProrationCalculator.UpgradePrice(proration.UpgradeParams{
		TargetPlanPrice:  targetPlan.Price,
		CurrentPricePaid: cycle.PricePaid,
		CycleEnd:         cycle.CycleEnd,
		Now:              time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.UpgradeQuoteResponse{
		PlanID: targetPlan.ID,
		Price:  result.Price,
	}, nil
}

func (s *subscriptionService) GetActiveSubscription(ctx context.Context, subscriberID string) (*dto.SubscriptionResponse, error) {
	resolved, err := resolveSubscriberID(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.GetActive(ctx, resolved)
	if err != nil {
		return nil, err
	}

	return &dto.SubscriptionResponse{Subscription: sub}, nil
}
