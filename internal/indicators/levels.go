package indicators

import (
	"fmt"
	"sort"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// LevelsResult holds deduplicated support/resistance levels and the nearest
// level on each side of the current price. Nearest fields are nil when no
// level exists on that side.
type LevelsResult struct {
	SupportLevels     []float64
	ResistanceLevels  []float64
	NearestSupport    *float64
	NearestResistance *float64
}

// FibonacciLevels are the retracement prices between a swing high and low.
type FibonacciLevels struct {
	Level0   float64 // swing high
	Level236 float64
	Level382 float64
	Level500 float64
	Level618 float64
	Level786 float64
	Level100 float64 // swing low
}

// SupportResistance derives candidate levels from rolling extrema of the
// highs and lows over the given window, deduplicates levels closer than 2%
// of each other, and reports the nearest level on each side of the latest
// close.
func SupportResistance(candles []*domain.Candle, window int) (LevelsResult, error) {
	if window <= 0 {
		return LevelsResult{}, fmt.Errorf("support/resistance window must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) < window {
		return LevelsResult{}, fmt.Errorf("not enough data (%d) to find levels for window %d: %w", len(candles), window, ports.ErrInsufficientData)
	}

	var highs, lows []float64
	for end := window - 1; end < len(candles); end++ {
		hi := candles[end].High
		lo := candles[end].Low
		for i := end - window + 1; i <= end; i++ {
			if candles[i].High > hi {
				hi = candles[i].High
			}
			if candles[i].Low < lo {
				lo = candles[i].Low
			}
		}
		highs = append(highs, hi)
		lows = append(lows, lo)
	}

	// Keep the five highest resistance and five lowest support candidates
	resistance := dedupeLevels(topN(highs, 5, true))
	support := dedupeLevels(topN(lows, 5, false))

	current := candles[len(candles)-1].Close
	res := LevelsResult{SupportLevels: support, ResistanceLevels: resistance}
	for _, s := range support {
		if s < current && (res.NearestSupport == nil || s > *res.NearestSupport) {
			v := s
			res.NearestSupport = &v
		}
	}
	for _, r := range resistance {
		if r > current && (res.NearestResistance == nil || r < *res.NearestResistance) {
			v := r
			res.NearestResistance = &v
		}
	}
	return res, nil
}

// Fibonacci computes retracement levels between the most significant swing
// high and low of the series.
func Fibonacci(candles []*domain.Candle) (FibonacciLevels, error) {
	if len(candles) == 0 {
		return FibonacciLevels{}, fmt.Errorf("empty candle series: %w", ports.ErrInsufficientData)
	}
	high := candles[0].High
	low := candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	diff := high - low
	return FibonacciLevels{
		Level0:   high,
		Level236: high - 0.236*diff,
		Level382: high - 0.382*diff,
		Level500: high - 0.500*diff,
		Level618: high - 0.618*diff,
		Level786: high - 0.786*diff,
		Level100: low,
	}, nil
}

// topN returns the n largest (desc=true) or smallest unique values, sorted
// ascending.
func topN(values []float64, n int, desc bool) []float64 {
	uniq := make(map[float64]struct{}, len(values))
	for _, v := range values {
		uniq[v] = struct{}{}
	}
	sorted := make([]float64, 0, len(uniq))
	for v := range uniq {
		sorted = append(sorted, v)
	}
	sort.Float64s(sorted)
	if len(sorted) <= n {
		return sorted
	}
	if desc {
		return sorted[len(sorted)-n:]
	}
	return sorted[:n]
}

// dedupeLevels drops levels within 2% of an already-kept level.
func dedupeLevels(levels []float64) []float64 {
	if len(levels) == 0 {
		return levels
	}
	deduped := []float64{levels[0]}
	for _, lvl := range levels[1:] {
		prev := deduped[len(deduped)-1]
		if prev != 0 && abs(lvl-prev)/prev > 0.02 {
			deduped = append(deduped, lvl)
		}
	}
	return deduped
}
