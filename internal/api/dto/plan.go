package dto

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/subflow/subflow/internal/domain/plan"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/types"
	"github.com/subflow/subflow/internal/validator"
)

type CreatePlanRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validatePlanPrice(r.Price)
}

func (r *CreatePlanRequest) ToPlan(ctx context.Context) *plan.Plan {
	return &plan.Plan{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:      r.Name,
		Price:     r.Price,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UpdatePlanRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

func (r *UpdatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validatePlanPrice(r.Price)
}

func validatePlanPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ierr.NewError("price cannot be negative").
			WithHint("Plan price must be zero or positive").
			WithReportableDetails(map[string]any{
				"price": price,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type PlanResponse struct {
	*plan.Plan
}

// ListPlansResponse represents the response for listing plans
type ListPlansResponse struct {
	Items []*PlanResponse `json:"items"`
	Total int             `json:"total"`
}
