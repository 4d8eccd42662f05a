package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// StochasticResult holds %K and %D for the latest bar.
type StochasticResult struct {
	K float64
	D float64
}

// Stochastic computes the stochastic oscillator:
// %K = 100 × (close − lowestLow(kPeriod)) / (highestHigh(kPeriod) − lowestLow(kPeriod)),
// %D = SMA(dPeriod) of %K.
func Stochastic(candles []*domain.Candle, kPeriod, dPeriod int) (StochasticResult, error) {
	if kPeriod <= 0 || dPeriod <= 0 {
		return StochasticResult{}, fmt.Errorf("stochastic periods must be positive: %w", ports.ErrInvalidInput)
	}
	need := kPeriod + dPeriod - 1
	if len(candles) < need {
		return StochasticResult{}, fmt.Errorf("not enough data (%d) to calculate Stochastic(%d,%d): %w", len(candles), kPeriod, dPeriod, ports.ErrInsufficientData)
	}

	kAt := func(end int) float64 {
		lo := candles[end].Low
		hi := candles[end].High
		for i := end - kPeriod + 1; i <= end; i++ {
			if candles[i].Low < lo {
				lo = candles[i].Low
			}
			if candles[i].High > hi {
				hi = candles[i].High
			}
		}
		if hi == lo {
			// Flat window: price sits exactly on both extremes
			return 50
		}
		return 100 * (candles[end].Close - lo) / (hi - lo)
	}

	last := len(candles) - 1
	res := StochasticResult{K: kAt(last)}
	sum := 0.0
	for i := last - dPeriod + 1; i <= last; i++ {
		sum += kAt(i)
	}
	res.D = sum / float64(dPeriod)
	return res, nil
}
