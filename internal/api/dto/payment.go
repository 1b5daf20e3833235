package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/subflow/subflow/internal/domain/payment"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/types"
	"github.com/subflow/subflow/internal/validator"
)

// RecordPaymentRequest is the write path for the external payment
// collaborator: it confirms a charge against a subscription and starts a new
// paid cycle at PaidAt.
type RecordPaymentRequest struct {
	SubscriptionID string          `json:"subscription_id" validate:"required"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	PaidAt         *time.Time      `json:"paid_at"`
}

func (r *RecordPaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.AmountPaid.IsNegative() {
		return ierr.NewError("amount paid cannot be negative").
			WithHint("Payment amount must be zero or positive").
			WithReportableDetails(map[string]any{
				"amount_paid": r.AmountPaid,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *RecordPaymentRequest) ToPayment(ctx context.Context, subscriberID string) *payment.Payment {
	paidAt := time.Now().UTC()
	if r.PaidAt != nil {
		paidAt = r.PaidAt.UTC()
	}
	return &payment.Payment{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		SubscriptionID: r.SubscriptionID,
		SubscriberID:   subscriberID,
		AmountPaid:     r.AmountPaid,
		PaymentStatus:  types.PaymentStatusSucceeded,
		PaidAt:         paidAt,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

type PaymentResponse struct {
	*payment.Payment
}
