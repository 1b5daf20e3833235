package types

import "time"

// BillingCycleDays is the length of a paid cycle. Every subscription is billed
// on a fixed 30 day cycle starting at its most recent confirmed payment.
const BillingCycleDays = 30

// BillingCycleDuration is the cycle length as an absolute duration. Day counts
// derived from it are computed on elapsed time, never on calendar day-of-month
// fields, so cycle math behaves the same across month boundaries.
const BillingCycleDuration = BillingCycleDays * 24 * time.Hour
