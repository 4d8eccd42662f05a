package app

import (
	"context"
	"fmt"
	"time"

	"swingAdvisor/config"
	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/indicators"
	"swingAdvisor/internal/ports"
	"swingAdvisor/internal/regime"
	"swingAdvisor/internal/risk"
	"swingAdvisor/internal/screener"
	"swingAdvisor/internal/stops"
)

// Evaluation is the full decision-support output for one instrument: the
// computed indicators, the screening score, the protective stop and the
// sizing decision under the current market regime.
type Evaluation struct {
	Symbol     string
	Indicators *indicators.IndicatorSet
	Screening  *screener.ScreeningResult
	Stop       *stops.StopLevel
	Sizing     *risk.SizingResult
}

// AdvisorService orchestrates one evaluation cycle: market regime first,
// then per-instrument indicators, screening, stops and sizing. It holds no
// market state between cycles; every run works on fresh snapshots.
type AdvisorService struct {
	cfg       *config.Config
	logger    ports.Logger
	market    ports.MarketDataProvider
	portfolio ports.PortfolioProvider
	tradeLog  ports.TradeLog // optional; feeds realized P&L into the breaker
	stopCalc  *stops.Calculator
	riskMgr   *risk.Manager
}

// NewAdvisorService creates the application service instance.
func NewAdvisorService(
	cfg *config.Config,
	logger ports.Logger,
	market ports.MarketDataProvider,
	portfolio ports.PortfolioProvider,
	tradeLog ports.TradeLog,
) (*AdvisorService, error) {

	// Validate dependencies; the trade log alone is optional.
	if cfg == nil || logger == nil || market == nil || portfolio == nil {
		return nil, fmt.Errorf("missing required dependencies for AdvisorService")
	}
	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("configuration must list at least one symbol")
	}
	if cfg.LookbackBars <= 0 {
		return nil, fmt.Errorf("configuration LookbackBars must be positive")
	}

	limits := risk.LimitsForProfile(cfg.RiskProfile)
	if cfg.CashBuffer > 0 {
		limits.CashBuffer = cfg.CashBuffer
	}

	return &AdvisorService{
		cfg:       cfg,
		logger:    logger,
		market:    market,
		portfolio: portfolio,
		tradeLog:  tradeLog,
		stopCalc:  stops.New(stops.Config{}),
		riskMgr:   risk.NewManager(limits),
	}, nil
}

// ClassifyMarket computes the current market regime from the configured
// benchmark and volatility series. A failed or missing series degrades that
// input to nil; the classifier falls back to its cautious defaults.
func (s *AdvisorService) ClassifyMarket(ctx context.Context) *regime.MarketRegime {
	benchmark := s.seriesSet(ctx, s.cfg.BenchmarkSymbol)
	secondary := s.seriesSet(ctx, s.cfg.SecondarySymbol)
	var volatility *indicators.IndicatorSet
	if s.cfg.VolIndexSymbol != "" {
		volatility = s.seriesSet(ctx, s.cfg.VolIndexSymbol)
	}

	r := regime.Classify(benchmark, secondary, volatility)
	s.logger.Info(ctx, "Market regime classified", map[string]interface{}{
		"benchmarkTrend":   r.BenchmarkTrend,
		"secondaryTrend":   r.SecondaryTrend,
		"volatilityRegime": r.VolatilityRegime,
		"bias":             r.Bias,
		"sizingAdjustment": r.SizingAdjustment,
	})
	return r
}

// seriesSet fetches one symbol's candles and computes its indicator set,
// returning nil when either step fails.
func (s *AdvisorService) seriesSet(ctx context.Context, symbol string) *indicators.IndicatorSet {
	candles, err := s.market.GetCandles(ctx, symbol, s.cfg.Interval, s.cfg.LookbackBars)
	if err != nil {
		s.logger.Warn(ctx, "Failed to fetch benchmark series", map[string]interface{}{"symbol": symbol, "error": err.Error()})
		return nil
	}
	set, err := indicators.ComputeSet(candles)
	if err != nil {
		s.logger.Warn(ctx, "Failed to compute benchmark indicators", map[string]interface{}{"symbol": symbol, "error": err.Error()})
		return nil
	}
	return set
}

// snapshotPortfolio fetches the portfolio state and, when a trade log is
// wired, replaces the realized P&L figure with the log's authoritative sum
// for the current trading day.
func (s *AdvisorService) snapshotPortfolio(ctx context.Context) (*domain.PortfolioState, error) {
	state, err := s.portfolio.GetPortfolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch portfolio snapshot: %w", err)
	}
	if s.tradeLog != nil {
		pnl, err := s.tradeLog.RealizedPnLToday(ctx, time.Now().UTC())
		if err != nil {
			s.logger.Warn(ctx, "Failed to read realized P&L from trade log, keeping provider value", map[string]interface{}{"error": err.Error()})
		} else {
			state.RealizedPnLToday = pnl
		}
	}
	return state, nil
}

// Evaluate runs the full pipeline for one instrument under the given market
// regime and portfolio snapshot.
func (s *AdvisorService) Evaluate(
	ctx context.Context,
	symbol string,
	conviction domain.Conviction,
	marketRegime *regime.MarketRegime,
	portfolio *domain.PortfolioState,
) (*Evaluation, error) {
	op := "Evaluate"

	candles, err := s.market.GetCandles(ctx, symbol, s.cfg.Interval, s.cfg.LookbackBars)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch candles for %s: %w", op, symbol, err)
	}

	set, err := indicators.ComputeSet(candles)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to compute indicators for %s: %w", op, symbol, err)
	}

	screening := screener.Score(set)

	stop, err := s.stopCalc.Compute(candles, domain.Buy)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to compute stop for %s: %w", op, symbol, err)
	}

	sizing := s.riskMgr.Size(risk.SizingRequest{
		Symbol:     symbol,
		Conviction: conviction,
		Stop:       stop,
		Regime:     marketRegime,
		Portfolio:  portfolio,
	})

	s.logger.Info(ctx, "Instrument evaluated", map[string]interface{}{
		"symbol":     symbol,
		"css":        screening.CSS,
		"signal":     screening.Signal,
		"stopMethod": stop.Method,
		"slRate":     stop.SLRate,
		"amount":     sizing.Amount,
		"constraint": sizing.BindingConstraint,
		"rejected":   sizing.Rejected,
	})

	return &Evaluation{
		Symbol:     symbol,
		Indicators: set,
		Screening:  screening,
		Stop:       stop,
		Sizing:     sizing,
	}, nil
}

// EvaluateAll classifies the market once, snapshots the portfolio once, and
// evaluates every configured symbol. A failing instrument is logged and
// skipped; the cycle continues with the rest.
func (s *AdvisorService) EvaluateAll(ctx context.Context) ([]*Evaluation, error) {
	marketRegime := s.ClassifyMarket(ctx)

	portfolio, err := s.snapshotPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	if s.riskMgr.CircuitBreakerActive(portfolio) {
		s.logger.Warn(ctx, "Daily loss circuit breaker active, all sizing requests will be rejected", map[string]interface{}{
			"realizedPnLToday": portfolio.RealizedPnLToday,
			"totalValue":       portfolio.TotalValue,
		})
	}

	conviction := domain.ParseConviction(s.cfg.Conviction)
	evaluations := make([]*Evaluation, 0, len(s.cfg.Symbols))
	for _, symbol := range s.cfg.Symbols {
		if ctx.Err() != nil {
			return evaluations, ctx.Err()
		}
		eval, err := s.Evaluate(ctx, symbol, conviction, marketRegime, portfolio)
		if err != nil {
			s.logger.Error(ctx, err, "Skipping instrument", map[string]interface{}{"symbol": symbol})
			continue
		}
		evaluations = append(evaluations, eval)
	}
	return evaluations, nil
}
