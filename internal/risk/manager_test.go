package risk

import (
	"testing"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/regime"
	"swingAdvisor/internal/stops"
)

func healthyPortfolio() *domain.PortfolioState {
	return &domain.PortfolioState{
		TotalValue:    10000,
		CashAvailable: 10000,
	}
}

func stopWithPct(pct float64) *stops.StopLevel {
	return &stops.StopLevel{SLPct: pct, Method: stops.MethodChandelier, TrendUp: true, TrailingAllowed: true}
}

func calmRegime() *regime.MarketRegime {
	return &regime.MarketRegime{SizingAdjustment: 1.0, Bias: domain.BiasRiskOn}
}

func TestManager_RiskBudgetSizing(t *testing.T) {
	// 10k portfolio, strong conviction, 5% stop: risk budget 200 allows a
	// raw 4000, the 8% conviction concentration cap brings it to 800.
	m := NewManager(ConservativeLimits())
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Regime:     calmRegime(),
		Portfolio:  healthyPortfolio(),
	})

	if res.Rejected {
		t.Fatalf("Unexpected rejection: %s", res.Reason)
	}
	if res.Amount != 800 {
		t.Errorf("Expected amount 800, got %f", res.Amount)
	}
	if res.BindingConstraint != ConstraintConcentration {
		t.Errorf("Expected CONCENTRATION binding, got %s", res.BindingConstraint)
	}
	// 800 at a 5% stop risks 40 on a 10k book.
	if !almostEqual(res.ActualRiskPct, 0.004, 0.0001) {
		t.Errorf("Expected actual risk 0.4%%, got %f", res.ActualRiskPct)
	}
	if !res.TrailingAllowed {
		t.Error("Expected trailing allowed with an up trend gate")
	}
}

func TestManager_RegimeAdjustmentHalvesAmount(t *testing.T) {
	m := NewManager(ConservativeLimits())
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Regime:     &regime.MarketRegime{SizingAdjustment: 0.5, VolatilityRegime: domain.VolHigh},
		Portfolio:  healthyPortfolio(),
	})

	if res.Rejected {
		t.Fatalf("Unexpected rejection: %s", res.Reason)
	}
	if res.Amount != 400 {
		t.Errorf("Expected amount 400 in a high-volatility regime, got %f", res.Amount)
	}
}

func TestManager_ConvictionTiersAreMonotone(t *testing.T) {
	m := NewManager(AggressiveLimits())
	var last float64
	for _, conviction := range []domain.Conviction{domain.ConvictionWeak, domain.ConvictionModerate, domain.ConvictionStrong} {
		res := m.Size(SizingRequest{
			Symbol:     "AAPL",
			Conviction: conviction,
			Stop:       stopWithPct(0.05),
			Regime:     calmRegime(),
			Portfolio:  healthyPortfolio(),
		})
		if res.Rejected {
			t.Fatalf("Unexpected rejection for %s: %s", conviction, res.Reason)
		}
		if res.Amount < last {
			t.Errorf("Expected %s amount >= previous tier, got %f < %f", conviction, res.Amount, last)
		}
		last = res.Amount
	}
}

func TestManager_CircuitBreaker(t *testing.T) {
	m := NewManager(ConservativeLimits())
	p := healthyPortfolio()
	p.RealizedPnLToday = -300 // 3% of 10k hits the conservative breaker

	if !m.CircuitBreakerActive(p) {
		t.Fatal("Expected the circuit breaker to be active")
	}

	for _, conviction := range []domain.Conviction{domain.ConvictionWeak, domain.ConvictionModerate, domain.ConvictionStrong} {
		res := m.Size(SizingRequest{
			Symbol:     "AAPL",
			Conviction: conviction,
			Stop:       stopWithPct(0.05),
			Regime:     calmRegime(),
			Portfolio:  p,
		})
		if !res.Rejected || res.Amount != 0 {
			t.Errorf("Expected zero-amount rejection for %s, got %+v", conviction, res)
		}
		if res.BindingConstraint != ConstraintCircuitBreaker {
			t.Errorf("Expected CIRCUIT_BREAKER, got %s", res.BindingConstraint)
		}
	}
}

func TestManager_CashBuffer(t *testing.T) {
	m := NewManager(ConservativeLimits())
	p := &domain.PortfolioState{
		TotalValue:    10000,
		CashAvailable: 700,
	}
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Regime:     calmRegime(),
		Portfolio:  p,
	})
	if res.Rejected {
		t.Fatalf("Unexpected rejection: %s", res.Reason)
	}
	// 700 cash minus the 200 buffer caps the 800 concentration amount.
	if res.Amount != 500 {
		t.Errorf("Expected amount 500, got %f", res.Amount)
	}
	if res.BindingConstraint != ConstraintCashBuffer {
		t.Errorf("Expected CASH_BUFFER binding, got %s", res.BindingConstraint)
	}
}

func TestManager_CashBufferDoublesAtHighExposure(t *testing.T) {
	m := NewManager(ConservativeLimits())
	p := &domain.PortfolioState{
		TotalValue:    10000,
		CashAvailable: 700,
		TotalInvested: 8500, // 85% exposure
	}
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Regime:     calmRegime(),
		Portfolio:  p,
	})
	if res.Rejected {
		t.Fatalf("Unexpected rejection: %s", res.Reason)
	}
	// Buffer doubles to 400, leaving 300 of cash headroom.
	if res.Amount != 300 {
		t.Errorf("Expected amount 300, got %f", res.Amount)
	}
	if res.BindingConstraint != ConstraintCashBuffer {
		t.Errorf("Expected CASH_BUFFER binding, got %s", res.BindingConstraint)
	}
}

func TestManager_MinSizeRejectsInsteadOfRoundingUp(t *testing.T) {
	m := NewManager(AggressiveLimits()) // min trade 50
	p := &domain.PortfolioState{
		TotalValue:    10000,
		CashAvailable: 230, // 30 of headroom after the buffer
	}
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionWeak,
		Stop:       stopWithPct(0.05),
		Regime:     calmRegime(),
		Portfolio:  p,
	})
	if !res.Rejected || res.Amount != 0 {
		t.Fatalf("Expected zero-amount rejection, got %+v", res)
	}
	if res.BindingConstraint != ConstraintMinSize {
		t.Errorf("Expected MIN_SIZE, got %s", res.BindingConstraint)
	}
}

func TestManager_PostTradeConcentration(t *testing.T) {
	m := NewManager(ConservativeLimits()) // 10% per-instrument cap
	p := healthyPortfolio()
	p.TotalInvested = 700
	p.Positions = []*domain.Position{
		{Symbol: "AAPL", Amount: 700, Direction: domain.Buy, Leverage: 1.0},
	}
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Regime:     calmRegime(),
		Portfolio:  p,
	})
	// Existing 700 plus the 800 candidate is 15% of the book.
	if !res.Rejected {
		t.Fatalf("Expected rejection, got %+v", res)
	}
	if res.BindingConstraint != ConstraintConcentration {
		t.Errorf("Expected CONCENTRATION, got %s", res.BindingConstraint)
	}
}

func TestManager_PostTradeExposure(t *testing.T) {
	m := NewManager(ConservativeLimits()) // 90% exposure cap
	p := &domain.PortfolioState{
		TotalValue:    10000,
		CashAvailable: 1200,
		TotalInvested: 8800,
	}
	res := m.Size(SizingRequest{
		Symbol:     "MSFT",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Regime:     calmRegime(),
		Portfolio:  p,
	})
	if !res.Rejected {
		t.Fatalf("Expected rejection, got %+v", res)
	}
	if res.BindingConstraint != ConstraintExposure {
		t.Errorf("Expected EXPOSURE, got %s", res.BindingConstraint)
	}
}

func TestManager_LeverageRejected(t *testing.T) {
	m := NewManager(ConservativeLimits())
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Regime:     calmRegime(),
		Portfolio:  healthyPortfolio(),
		Leverage:   2.0,
	})
	if !res.Rejected || res.BindingConstraint != ConstraintLeverage {
		t.Errorf("Expected LEVERAGE rejection, got %+v", res)
	}
}

func TestManager_ZeroPortfolioValue(t *testing.T) {
	m := NewManager(ConservativeLimits())
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Portfolio:  &domain.PortfolioState{},
	})
	if !res.Rejected || res.Amount != 0 {
		t.Errorf("Expected defined zero rejection for an empty portfolio, got %+v", res)
	}
}

func TestManager_NoTrailingWhenTrendDown(t *testing.T) {
	m := NewManager(ConservativeLimits())
	stop := &stops.StopLevel{SLPct: 0.05, Method: stops.MethodChandelier, TrendUp: false, TrailingAllowed: false}
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionModerate,
		Stop:       stop,
		Regime:     calmRegime(),
		Portfolio:  healthyPortfolio(),
	})
	if res.Rejected {
		t.Fatalf("Unexpected rejection: %s", res.Reason)
	}
	if res.TrailingAllowed {
		t.Error("Trailing must never be allowed when the trend gate is down")
	}
}

func TestManager_MaxTradeClamp(t *testing.T) {
	m := NewManager(ConservativeLimits()) // max trade 1000
	p := &domain.PortfolioState{
		TotalValue:    100000,
		CashAvailable: 100000,
	}
	res := m.Size(SizingRequest{
		Symbol:     "AAPL",
		Conviction: domain.ConvictionStrong,
		Stop:       stopWithPct(0.05),
		Regime:     calmRegime(),
		Portfolio:  p,
	})
	if res.Rejected {
		t.Fatalf("Unexpected rejection: %s", res.Reason)
	}
	if res.Amount != 1000 {
		t.Errorf("Expected clamp at max trade 1000, got %f", res.Amount)
	}
}

func almostEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
