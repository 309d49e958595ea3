package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Gab661-coder/Gabinvest/internal/domain"
	"github.com/Gab661-coder/Gabinvest/internal/repository"
)

var (
	// ErrBelowMinimum indicates an amount under the plan's minimum investment.
	ErrBelowMinimum = errors.New("amount below plan minimum")
	// ErrMissingProof indicates a confirmation without payment proof.
	ErrMissingProof = errors.New("payment proof is required")
	// ErrNoPendingInvestment indicates a confirmation with no initiated purchase.
	ErrNoPendingInvestment = errors.New("no pending investment")
)

// PendingInvestment is a purchase candidate awaiting payment-proof
// confirmation. It is bound to the session user that initiated it.
type PendingInvestment struct {
	UserID int64
	Plan   domain.Plan
	Amount float64
	Terms  domain.PlanTerms
}

// InvestmentService validates and records simulated purchases against the
// active session via a two-phase initiate/confirm flow.
type InvestmentService interface {
	Initiate(ctx context.Context, planName string, amount float64) (PendingInvestment, error)
	Confirm(ctx context.Context, proof string) (domain.Investment, error)
	Pending() (PendingInvestment, bool)
	ClearPending()
}

type investmentService struct {
	sessions SessionService
	registry *repository.AccountRegistry

	mu      sync.Mutex
	pending *PendingInvestment
}

func NewInvestmentService(sessions SessionService, registry *repository.AccountRegistry) InvestmentService {
	return &investmentService{
		sessions: sessions,
		registry: registry,
	}
}

// Initiate records a purchase candidate without mutating the user. A second
// call overwrites any previous candidate.
func (s *investmentService) Initiate(ctx context.Context, planName string, amount float64) (PendingInvestment, error) {
	user, ok := s.sessions.Current()
	if !ok {
		return PendingInvestment{}, ErrNotAuthenticated
	}

	plan, err := domain.ParsePlan(planName)
	if err != nil {
		return PendingInvestment{}, err
	}

	terms := plan.Terms()
	if amount < terms.Minimum {
		return PendingInvestment{}, fmt.Errorf("%w: minimum for %s plan is %.0f", ErrBelowMinimum, plan, terms.Minimum)
	}

	candidate := PendingInvestment{
		UserID: user.ID,
		Plan:   plan,
		Amount: amount,
		Terms:  terms,
	}

	s.mu.Lock()
	s.pending = &candidate
	s.mu.Unlock()

	return candidate, nil
}

// Confirm consumes the pending candidate, appends the investment to the
// active user and persists the user into both the registry and the session.
func (s *investmentService) Confirm(ctx context.Context, proof string) (domain.Investment, error) {
	user, ok := s.sessions.Current()
	if !ok {
		return domain.Investment{}, ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil || s.pending.UserID != user.ID {
		return domain.Investment{}, ErrNoPendingInvestment
	}
	if strings.TrimSpace(proof) == "" {
		return domain.Investment{}, ErrMissingProof
	}

	investment := domain.Investment{
		ID:        domain.NewID(),
		Plan:      s.pending.Plan,
		Amount:    s.pending.Amount,
		Rate:      s.pending.Terms.Rate,
		Duration:  s.pending.Terms.Duration,
		StartDate: time.Now().UTC(),
		Status:    domain.InvestmentStatusActive,
	}

	user.Investments = append(user.Investments, investment)
	user.TotalInvested += investment.Amount

	if err := s.registry.Save(ctx, user); err != nil {
		return domain.Investment{}, err
	}
	if err := s.sessions.Update(ctx, user); err != nil {
		return domain.Investment{}, err
	}

	s.pending = nil
	return investment, nil
}

// Pending exposes the current candidate, if any, for the presentation layer.
func (s *investmentService) Pending() (PendingInvestment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return PendingInvestment{}, false
	}
	return *s.pending, true
}

// ClearPending drops any candidate. Called on logout so a candidate never
// survives a session.
func (s *investmentService) ClearPending() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}
