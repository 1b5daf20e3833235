package proration

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/types"
)

// Calculator computes the price to charge when a subscriber switches plans
// mid-cycle, crediting the unused portion of the current paid cycle against
// the target plan's full price.
type Calculator interface {
	UpgradePrice(params UpgradeParams) (*UpgradeResult, error)
}

// NewCalculator creates the day-based upgrade price calculator.
func NewCalculator() Calculator {
	return &dayBasedCalculator{}
}

// dayBasedCalculator prorates over whole remaining days of the fixed 30-day
// cycle. All arithmetic truncates (floor), never rounds.
type dayBasedCalculator struct{}

func (c *dayBasedCalculator) UpgradePrice(params UpgradeParams) (*UpgradeResult, error) {
	if err := validateParams(params); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid proration parameters").
			Mark(ierr.ErrValidation)
	}

	result := &UpgradeResult{
		Price:  params.TargetPlanPrice,
		Credit: decimal.Zero,
	}

	// An elapsed cycle earns no credit
	if !params.CycleEnd.After(params.Now) {
		return result, nil
	}

	// Remaining days are counted on absolute elapsed time so the result is
	// timezone independent and stable across month boundaries.
	result.RemainingDays = daysInDuration(params.CycleEnd.Sub(params.Now))

	credit := decimal.NewFromInt(result.RemainingDays).
		Mul(params.CurrentPricePaid).
		Div(decimal.NewFromInt(types.BillingCycleDays)).
		Floor()

	price := params.TargetPlanPrice.Sub(credit)
	// A credit larger than the target price would produce a negative charge,
	// which has no defined business meaning here
	if price.IsNegative() {
		price = decimal.Zero
	}

	result.Price = price
	result.Credit = credit
	return result, nil
}

// daysInDuration returns the number of whole days in d, truncating any
// partial day.
func daysInDuration(d time.Duration) int64 {
	return int64(d / (24 * time.Hour))
}

// validateParams checks if essential parameters are provided.
func validateParams(params UpgradeParams) error {
	if params.Now.IsZero() {
		return fmt.Errorf("proration date is required")
	}
	if params.CycleEnd.IsZero() {
		return fmt.Errorf("cycle end date is required")
	}
	if params.TargetPlanPrice.IsNegative() {
		return fmt.Errorf("target plan price cannot be negative")
	}
	if params.CurrentPricePaid.IsNegative() {
		return fmt.Errorf("current price paid cannot be negative")
	}
	return nil
}
