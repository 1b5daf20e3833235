package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/subflow/subflow/internal/errors"
)

// CurrentCycle describes the subscriber's running paid cycle as resolved from
// payment history: the amount actually paid for it and when it ends.
type CurrentCycle struct {
	PricePaid decimal.Decimal
	CycleEnd  time.Time
}

// BillingService resolves subscribers' confirmed payment state. It reads the
// price as paid rather than the plan's current price, so repricing a plan
// never changes credit already earned.
type BillingService interface {
	// GetCurrentCycle returns nil when the subscriber has no active
	// subscription or no confirmed payment.
	GetCurrentCycle(ctx context.Context, subscriberID string) (*CurrentCycle, error)
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) GetCurrentCycle(ctx context.Context, subscriberID string) (*CurrentCycle, error) {
	if _, err := s.SubRepo.GetActive(ctx, subscriberID); err != nil {
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	pay, err := s.PaymentRepo.GetLatestSucceeded(ctx, subscriberID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &CurrentCycle{
		PricePaid: pay.AmountPaid,
		CycleEnd:  pay.CycleEnd(),
	}, nil
}
