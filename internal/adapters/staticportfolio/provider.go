package staticportfolio

import (
	"context"
	"fmt"

	"swingAdvisor/internal/domain"
)

// Provider implements ports.PortfolioProvider from a caller-declared account
// snapshot. Brokerage integration is out of scope for the advisor; the user
// states their book via configuration and owns keeping it current.
type Provider struct {
	state domain.PortfolioState
}

// New validates and captures the declared snapshot.
func New(state *domain.PortfolioState) (*Provider, error) {
	if state == nil {
		return nil, fmt.Errorf("portfolio state is required")
	}
	if state.TotalValue < 0 || state.CashAvailable < 0 || state.TotalInvested < 0 {
		return nil, fmt.Errorf("portfolio figures cannot be negative")
	}
	if state.TotalInvested > state.TotalValue {
		return nil, fmt.Errorf("invested amount %.2f exceeds total value %.2f", state.TotalInvested, state.TotalValue)
	}
	return &Provider{state: *state}, nil
}

// GetPortfolio returns a fresh copy of the declared snapshot so callers can
// overlay per-cycle figures (realized P&L) without mutating the source.
func (p *Provider) GetPortfolio(ctx context.Context) (*domain.PortfolioState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state := p.state
	state.Positions = make([]*domain.Position, len(p.state.Positions))
	for i, pos := range p.state.Positions {
		cp := *pos
		state.Positions[i] = &cp
	}
	return &state, nil
}
