package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// SuperTrendResult is the trend-state gate for the latest bar: the active
// band level and whether the trend is up.
type SuperTrendResult struct {
	Value   float64
	TrendUp bool
}

// SuperTrend computes an ATR-based trend filter with band-locking: in an
// uptrend the lower band only rises, in a downtrend the upper band only
// falls, so short volatility spikes cannot push the band away from price
// during an active trend. The trend flips only when the close crosses the
// active band.
func SuperTrend(candles []*domain.Candle, period int, mult float64) (SuperTrendResult, error) {
	if period <= 0 || mult <= 0 {
		return SuperTrendResult{}, fmt.Errorf("SuperTrend period and multiplier must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) < period+1 {
		return SuperTrendResult{}, fmt.Errorf("not enough data (%d) to calculate SuperTrend for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}

	trs := trueRanges(candles)

	// Running Wilder ATR; bands are defined from bar index `period` onward.
	atr := 0.0
	for i := 0; i < period; i++ {
		atr += trs[i]
	}
	atr /= float64(period)

	var upper, lower float64
	trendUp := true
	for i := period; i < len(candles); i++ {
		if i > period {
			atr = (atr*float64(period-1) + trs[i-1]) / float64(period)
		}
		hl2 := (candles[i].High + candles[i].Low) / 2
		ubBasic := hl2 + mult*atr
		lbBasic := hl2 - mult*atr

		if i == period {
			upper, lower = ubBasic, lbBasic
		} else {
			prevClose := candles[i-1].Close
			// Band-locking: the upper band only tightens unless the prior
			// close broke above it, which resets it to the basic value.
			if ubBasic < upper || prevClose > upper {
				upper = ubBasic
			}
			if lbBasic > lower || prevClose < lower {
				lower = lbBasic
			}
		}

		if trendUp {
			trendUp = candles[i].Close >= lower
		} else {
			trendUp = candles[i].Close > upper
		}
	}

	res := SuperTrendResult{TrendUp: trendUp}
	if trendUp {
		res.Value = lower
	} else {
		res.Value = upper
	}
	return res, nil
}

// HighestHigh returns the maximum high over the last period bars.
func HighestHigh(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("lookback period must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) < period {
		return 0, fmt.Errorf("not enough data (%d) for highest high over %d bars: %w", len(candles), period, ports.ErrInsufficientData)
	}
	hi := candles[len(candles)-period].High
	for i := len(candles) - period + 1; i < len(candles); i++ {
		if candles[i].High > hi {
			hi = candles[i].High
		}
	}
	return hi, nil
}

// LowestLow returns the minimum low over the last period bars.
func LowestLow(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("lookback period must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) < period {
		return 0, fmt.Errorf("not enough data (%d) for lowest low over %d bars: %w", len(candles), period, ports.ErrInsufficientData)
	}
	lo := candles[len(candles)-period].Low
	for i := len(candles) - period + 1; i < len(candles); i++ {
		if candles[i].Low < lo {
			lo = candles[i].Low
		}
	}
	return lo, nil
}
