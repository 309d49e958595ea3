package domain

import "time"

type InvestmentStatus string

// Purchases never transition out of active: there is no maturity or payout
// logic in this system.
const InvestmentStatusActive InvestmentStatus = "active"

// Investment is a confirmed purchase. Immutable once recorded; owned by
// exactly one User and appended, never removed.
type Investment struct {
	ID        int64            `json:"id"`
	Plan      Plan             `json:"plan"`
	Amount    float64          `json:"amount"`
	Rate      float64          `json:"rate"`
	Duration  int              `json:"duration"`
	StartDate time.Time        `json:"startDate"`
	Status    InvestmentStatus `json:"status"`
}
