package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownPlan is returned when a plan name is not one of the fixed tiers.
var ErrUnknownPlan = errors.New("unknown investment plan")

// Plan is one of the fixed investment tiers.
type Plan string

const (
	PlanStarter Plan = "starter"
	PlanPremium Plan = "premium"
	PlanElite   Plan = "elite"
)

// PlanTerms are the fixed conditions attached to a plan.
type PlanTerms struct {
	Minimum  float64 `json:"minimum"`
	Rate     float64 `json:"rate"`
	Duration int     `json:"duration"`
}

var planTerms = map[Plan]PlanTerms{
	PlanStarter: {Minimum: 5000, Rate: 0.12, Duration: 30},
	PlanPremium: {Minimum: 20000, Rate: 0.18, Duration: 60},
	PlanElite:   {Minimum: 100000, Rate: 0.25, Duration: 90},
}

// ParsePlan validates a plan name coming from the outside.
func ParsePlan(s string) (Plan, error) {
	switch p := Plan(s); p {
	case PlanStarter, PlanPremium, PlanElite:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, s)
	}
}

// Terms returns the conditions for a plan obtained through ParsePlan.
func (p Plan) Terms() PlanTerms {
	return planTerms[p]
}

// Plans lists the tiers in ascending order of minimum amount.
func Plans() []Plan {
	return []Plan{PlanStarter, PlanPremium, PlanElite}
}
