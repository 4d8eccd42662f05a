package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// SMA computes the Simple Moving Average of the closing prices over the
// last period bars.
func SMA(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("SMA period must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) < period {
		return 0, fmt.Errorf("not enough data (%d) to calculate SMA for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}
	total := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		total += candles[i].Close
	}
	return total / float64(period), nil
}

// EMA computes the Exponential Moving Average of the closing prices with
// smoothing 2/(period+1). The recursion is seeded with the first close and
// run over the whole series, so the value converges regardless of where the
// series starts; a series shorter than the period is still rejected.
func EMA(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("EMA period must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) < period {
		return 0, fmt.Errorf("not enough data (%d) to calculate EMA for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}
	series := emaSeries(domain.Closes(candles), period)
	return series[len(series)-1], nil
}

// AlignmentResult describes how the swing MAs are stacked relative to price.
type AlignmentResult struct {
	Status           domain.Alignment
	BullishLayers    int
	BearishLayers    int
	PriceAboveEMA21  bool
	EMA21AboveSMA50  bool
	SMA50AboveSMA200 bool
}

// MAAlignment labels the stacking order of price, EMA21, SMA50 and SMA200.
// Golden alignment (price > EMA21 > SMA50 > SMA200) marks an established
// uptrend; Death is the full inverse. Two of three layers stacked one way
// yields MOSTLY_BULLISH / MOSTLY_BEARISH, anything else MIXED.
func MAAlignment(price, ema21, sma50, sma200 float64) AlignmentResult {
	res := AlignmentResult{
		PriceAboveEMA21:  price > ema21,
		EMA21AboveSMA50:  ema21 > sma50,
		SMA50AboveSMA200: sma50 > sma200,
	}
	if res.PriceAboveEMA21 {
		res.BullishLayers++
	}
	if res.EMA21AboveSMA50 {
		res.BullishLayers++
	}
	if res.SMA50AboveSMA200 {
		res.BullishLayers++
	}
	if price < ema21 {
		res.BearishLayers++
	}
	if ema21 < sma50 {
		res.BearishLayers++
	}
	if sma50 < sma200 {
		res.BearishLayers++
	}

	switch {
	case res.BullishLayers == 3:
		res.Status = domain.AlignmentGolden
	case res.BearishLayers == 3:
		res.Status = domain.AlignmentDeath
	case res.BullishLayers >= 2:
		res.Status = domain.AlignmentMostlyBullish
	case res.BearishLayers >= 2:
		res.Status = domain.AlignmentMostlyBearish
	default:
		res.Status = domain.AlignmentMixed
	}
	return res
}
