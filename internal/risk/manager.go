package risk

import (
	"math"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/regime"
	"swingAdvisor/internal/stops"
)

// Constraint names which limit bound the final amount, or which check
// rejected the trade.
type Constraint string

const (
	ConstraintRiskBudget     Constraint = "RISK_BUDGET"
	ConstraintConcentration  Constraint = "CONCENTRATION"
	ConstraintExposure       Constraint = "EXPOSURE"
	ConstraintCashBuffer     Constraint = "CASH_BUFFER"
	ConstraintMinSize        Constraint = "MIN_SIZE"
	ConstraintCircuitBreaker Constraint = "CIRCUIT_BREAKER"
	ConstraintLeverage       Constraint = "LEVERAGE"
)

// Exposure level above which the cash buffer doubles.
const highExposureThreshold = 0.80

// SizingRequest carries everything one sizing decision needs. The engine
// never reaches out for data on its own; callers pass fresh snapshots.
type SizingRequest struct {
	Symbol     string
	Conviction domain.Conviction
	Stop       *stops.StopLevel
	Regime     *regime.MarketRegime
	Portfolio  *domain.PortfolioState
	Leverage   float64 // 0 is treated as 1.0 (unleveraged)
}

// SizingResult is the final sizing decision. A rejection carries a zero
// amount, the constraint that vetoed the trade and a human-readable reason;
// it is a normal return value, not an error.
type SizingResult struct {
	Amount            float64
	ActualRiskPct     float64
	BindingConstraint Constraint
	TrailingAllowed   bool
	Rejected          bool
	Reason            string
}

// Manager sizes candidate trades against a fixed set of risk limits.
type Manager struct {
	limits RiskLimits
}

// NewManager creates a sizing engine for the given limits.
func NewManager(limits RiskLimits) *Manager {
	return &Manager{limits: limits}
}

// Limits returns the active limits.
func (m *Manager) Limits() RiskLimits {
	return m.limits
}

// CircuitBreakerActive reports whether today's realized loss has crossed the
// daily breaker threshold. Once active, every new exposure-increasing request
// is vetoed for the remainder of the trading day.
func (m *Manager) CircuitBreakerActive(p *domain.PortfolioState) bool {
	if p == nil || p.TotalValue <= 0 {
		return false
	}
	return math.Abs(p.RealizedPnLToday)/p.TotalValue >= m.limits.DailyLossBreakerPct
}

// Size runs the full sizing algorithm: circuit breaker, risk budget,
// concentration cap, cash buffer, regime multiplier, trade-size clamp, and
// the post-trade concentration/exposure/leverage checks.
func (m *Manager) Size(req SizingRequest) *SizingResult {
	res := &SizingResult{BindingConstraint: ConstraintRiskBudget}
	if req.Stop != nil {
		res.TrailingAllowed = req.Stop.TrailingAllowed
	}

	p := req.Portfolio
	if p == nil || p.TotalValue <= 0 {
		return reject(res, ConstraintRiskBudget, "portfolio value is zero")
	}
	if m.CircuitBreakerActive(p) {
		return reject(res, ConstraintCircuitBreaker, "daily loss breaker active")
	}
	if req.Stop == nil || req.Stop.SLPct <= 0 {
		return reject(res, ConstraintRiskBudget, "no stop distance available")
	}
	leverage := req.Leverage
	if leverage == 0 {
		leverage = 1.0
	}
	if leverage != 1.0 {
		return reject(res, ConstraintLeverage, "leverage is not permitted")
	}

	tier := tierFor(req.Conviction)
	riskDollars := p.TotalValue * tier.riskPct
	amount := riskDollars / req.Stop.SLPct

	// Per-trade concentration cap scales with conviction.
	if concCap := p.TotalValue * tier.concentrationPct; amount > concCap {
		amount = concCap
		res.BindingConstraint = ConstraintConcentration
	}

	// Cash buffer, doubled once the book is already heavily invested.
	buffer := m.limits.CashBuffer
	if p.ExposurePct() > highExposureThreshold {
		buffer *= 2
	}
	if cashCap := p.CashAvailable - buffer; amount > cashCap {
		amount = cashCap
		res.BindingConstraint = ConstraintCashBuffer
	}

	if req.Regime != nil && req.Regime.SizingAdjustment > 0 {
		amount *= req.Regime.SizingAdjustment
	}

	if amount > m.limits.MaxTrade {
		amount = m.limits.MaxTrade
	}
	if amount < m.limits.MinTrade {
		// Never round a too-small trade up to the minimum.
		return reject(res, ConstraintMinSize, "amount below minimum trade size")
	}

	if (m.heldAmount(p, req.Symbol)+amount)/p.TotalValue > m.limits.MaxConcentrationPct {
		return reject(res, ConstraintConcentration, "post-trade concentration above limit")
	}
	if (p.TotalInvested+amount)/p.TotalValue > m.limits.MaxExposurePct {
		return reject(res, ConstraintExposure, "post-trade exposure above limit")
	}

	res.Amount = amount
	res.ActualRiskPct = amount * req.Stop.SLPct / p.TotalValue
	return res
}

func (m *Manager) heldAmount(p *domain.PortfolioState, symbol string) float64 {
	total := 0.0
	for _, pos := range p.Positions {
		if pos != nil && pos.Symbol == symbol {
			total += pos.Amount
		}
	}
	return total
}

func reject(res *SizingResult, constraint Constraint, reason string) *SizingResult {
	res.Amount = 0
	res.ActualRiskPct = 0
	res.BindingConstraint = constraint
	res.Rejected = true
	res.Reason = reason
	res.TrailingAllowed = false
	return res
}
