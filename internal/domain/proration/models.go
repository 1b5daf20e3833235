package proration

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpgradeParams carries the inputs for an upgrade price calculation.
type UpgradeParams struct {
	// TargetPlanPrice is the full price of the plan being switched to
	TargetPlanPrice decimal.Decimal

	// CurrentPricePaid is the amount actually paid for the current cycle,
	// which may differ from the current plan price after a reprice
	CurrentPricePaid decimal.Decimal

	// CycleEnd is the end of the subscriber's current paid cycle
	CycleEnd time.Time

	// Now is the moment the switch takes effect
	Now time.Time
}

// UpgradeResult describes the computed charge for a mid-cycle plan switch.
type UpgradeResult struct {
	// Price is the amount to charge for the switch
	Price decimal.Decimal

	// Credit is the value of the unused portion of the current cycle that was
	// subtracted from the target plan price
	Credit decimal.Decimal

	// RemainingDays is the number of whole days left in the current cycle
	RemainingDays int64
}
