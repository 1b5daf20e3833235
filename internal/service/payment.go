package service

import (
	"context"

	"github.com/subflow/subflow/internal/api/dto"
)

// PaymentService records confirmed charges reported by the external payment
// collaborator. The core never initiates charges itself.
type PaymentService interface {
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	pay := req.ToPayment(ctx, sub.SubscriberID)
	if err := s.PaymentRepo.Create(ctx, pay); err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded payment",
		"payment_id", pay.ID,
		"subscription_id", pay.SubscriptionID,
		"subscriber_id", pay.SubscriberID,
		"amount_paid", pay.AmountPaid,
	)

	return &dto.PaymentResponse{Payment: pay}, nil
}
