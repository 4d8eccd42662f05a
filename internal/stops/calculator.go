package stops

import (
	"errors"
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/indicators"
	"swingAdvisor/internal/ports"
)

// Method identifies how a stop level was derived.
type Method string

const (
	// MethodChandelier anchors the stop to the extreme of the lookback
	// window minus a multiple of ATR.
	MethodChandelier Method = "chandelier"
	// MethodATRFallback is the plain ATR-distance stop used when the
	// series is too short for the chandelier window.
	MethodATRFallback Method = "atr_fallback"
)

// StopLevel is the protective stop decision for one instrument.
// SLRate always sits on the loss side of the reference price for the given
// direction. TPRate is zero when the method defines no target.
type StopLevel struct {
	SLRate          float64
	TPRate          float64
	SLPct           float64 // stop distance as a fraction of price
	TrendUp         bool
	Method          Method
	TrailingAllowed bool
}

// Config holds the stop calculator parameters.
type Config struct {
	LookbackPeriod int     // chandelier window, default 22
	ChandelierMult float64 // ATR multiple for the chandelier stop, default 3
	TrendPeriod    int     // trend gate ATR period, default 14
	TrendMult      float64 // trend gate band multiplier, default 3
	FallbackSLMult float64 // ATR multiple for the fallback stop, default 2
	FallbackTPMult float64 // ATR multiple for the fallback target, default 3
	MinStopPct     float64 // stop distance floor, default 0.01
	MaxStopPct     float64 // stop distance ceiling, default 0.15
}

func (c Config) withDefaults() Config {
	if c.LookbackPeriod <= 0 {
		c.LookbackPeriod = 22
	}
	if c.ChandelierMult <= 0 {
		c.ChandelierMult = 3.0
	}
	if c.TrendPeriod <= 0 {
		c.TrendPeriod = indicators.SuperTrendPeriod
	}
	if c.TrendMult <= 0 {
		c.TrendMult = indicators.SuperTrendMult
	}
	if c.FallbackSLMult <= 0 {
		c.FallbackSLMult = 2.0
	}
	if c.FallbackTPMult <= 0 {
		c.FallbackTPMult = 3.0
	}
	if c.MinStopPct <= 0 {
		c.MinStopPct = 0.01
	}
	if c.MaxStopPct <= 0 {
		c.MaxStopPct = 0.15
	}
	return c
}

// Calculator derives protective stop levels from candle series.
type Calculator struct {
	cfg Config
}

// New returns a Calculator, filling unset config fields with defaults.
func New(cfg Config) *Calculator {
	return &Calculator{cfg: cfg.withDefaults()}
}

// ChandelierStops computes the raw chandelier exit levels from the window
// extremes and the ATR over the same window.
func ChandelierStops(highestHigh, lowestLow, atr, mult float64) (longStop, shortStop float64) {
	return highestHigh - mult*atr, lowestLow + mult*atr
}

// Compute derives the stop level for the latest bar of the series.
// The chandelier method is used whenever the series covers the full lookback
// window; shorter series fall back to a plain ATR-distance stop. Trailing is
// only permitted for long exposure with the trend gate up; a trailing stop
// above the current price would trigger immediately.
func (c *Calculator) Compute(candles []*domain.Candle, direction domain.Direction) (*StopLevel, error) {
	if err := indicators.ValidateSeries(candles); err != nil {
		return nil, err
	}
	price := candles[len(candles)-1].Close
	if price <= 0 {
		return nil, fmt.Errorf("non-positive reference price %.4f: %w", price, ports.ErrInvalidInput)
	}

	level, err := c.chandelier(candles, price, direction)
	if errors.Is(err, ports.ErrInsufficientData) {
		level, err = c.fallback(candles, price, direction)
	}
	if err != nil {
		return nil, err
	}

	c.clamp(level, price, direction)
	level.TrailingAllowed = level.TrendUp && direction.IsBuy()
	return level, nil
}

func (c *Calculator) chandelier(candles []*domain.Candle, price float64, direction domain.Direction) (*StopLevel, error) {
	atr, err := indicators.ATR(candles, c.cfg.LookbackPeriod)
	if err != nil {
		return nil, err
	}
	hh, err := indicators.HighestHigh(candles, c.cfg.LookbackPeriod)
	if err != nil {
		return nil, err
	}
	ll, err := indicators.LowestLow(candles, c.cfg.LookbackPeriod)
	if err != nil {
		return nil, err
	}
	gate, err := indicators.SuperTrend(candles, c.cfg.TrendPeriod, c.cfg.TrendMult)
	if err != nil {
		return nil, err
	}

	longStop, shortStop := ChandelierStops(hh, ll, atr, c.cfg.ChandelierMult)
	level := &StopLevel{Method: MethodChandelier, TrendUp: gate.TrendUp}
	if direction.IsBuy() {
		level.SLRate = longStop
	} else {
		level.SLRate = shortStop
	}
	return level, nil
}

func (c *Calculator) fallback(candles []*domain.Candle, price float64, direction domain.Direction) (*StopLevel, error) {
	atr, err := indicators.ATR(candles, indicators.ATRPeriodShort)
	if err != nil {
		return nil, err
	}

	level := &StopLevel{Method: MethodATRFallback}
	if direction.IsBuy() {
		level.SLRate = price - c.cfg.FallbackSLMult*atr
		level.TPRate = price + c.cfg.FallbackTPMult*atr
	} else {
		level.SLRate = price + c.cfg.FallbackSLMult*atr
		level.TPRate = price - c.cfg.FallbackTPMult*atr
	}
	return level, nil
}

// clamp bounds the stop distance to [MinStopPct, MaxStopPct] of price and
// guarantees the stop ends up on the loss side of the reference price.
func (c *Calculator) clamp(level *StopLevel, price float64, direction domain.Direction) {
	dist := price - level.SLRate
	if !direction.IsBuy() {
		dist = level.SLRate - price
	}
	pct := dist / price
	if pct < c.cfg.MinStopPct {
		pct = c.cfg.MinStopPct
	} else if pct > c.cfg.MaxStopPct {
		pct = c.cfg.MaxStopPct
	}

	level.SLPct = pct
	if direction.IsBuy() {
		level.SLRate = price * (1 - pct)
	} else {
		level.SLRate = price * (1 + pct)
	}
}
