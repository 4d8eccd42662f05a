package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// ValidateSeries checks a candle series for fatal input errors: it must be
// non-empty, contain no nil entries, have strictly ascending timestamps and
// sane OHLC ranges. Short history is NOT a fatal error; individual
// indicators degrade on their own.
func ValidateSeries(candles []*domain.Candle) error {
	if len(candles) == 0 {
		return fmt.Errorf("empty candle series: %w", ports.ErrInvalidInput)
	}
	for i, c := range candles {
		if c == nil {
			return fmt.Errorf("nil candle at index %d: %w", i, ports.ErrInvalidInput)
		}
		if c.High < c.Low {
			return fmt.Errorf("candle at index %d has high %.4f below low %.4f: %w", i, c.High, c.Low, ports.ErrInvalidInput)
		}
		if i > 0 && !candles[i-1].Timestamp.Before(c.Timestamp) {
			return fmt.Errorf("non-monotonic timestamps at index %d: %w", i, ports.ErrInvalidInput)
		}
	}
	return nil
}

// trueRanges computes the True Range sequence for bars 1..n-1.
// TR = max(high-low, |high-prevClose|, |low-prevClose|).
func trueRanges(candles []*domain.Candle) []float64 {
	trs := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		hl := candles[i].High - candles[i].Low
		hc := abs(candles[i].High - candles[i-1].Close)
		lc := abs(candles[i].Low - candles[i-1].Close)
		trs = append(trs, max3(hl, hc, lc))
	}
	return trs
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// wilderSmooth applies Wilder's smoothing (EMA with alpha = 1/period) to a
// sequence, seeding with the simple average of the first period values.
// Returns the final smoothed value.
func wilderSmooth(values []float64, period int) float64 {
	avg := 0.0
	for i := 0; i < period; i++ {
		avg += values[i]
	}
	avg /= float64(period)
	for i := period; i < len(values); i++ {
		avg = (avg*float64(period-1) + values[i]) / float64(period)
	}
	return avg
}

// emaSeries computes a full EMA sequence with smoothing 2/(period+1),
// seeded with the first value. Mirrors an exponentially weighted mean that
// is defined from the first observation onward.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	multiplier := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}
