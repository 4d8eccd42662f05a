package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// OBV computes On-Balance Volume: cumulative volume signed by the
// close-to-close direction of each bar.
func OBV(candles []*domain.Candle) (float64, error) {
	if len(candles) < 2 {
		return 0, fmt.Errorf("not enough data (%d) to calculate OBV: %w", len(candles), ports.ErrInsufficientData)
	}
	obv := 0.0
	for i := 1; i < len(candles); i++ {
		switch {
		case candles[i].Close > candles[i-1].Close:
			obv += candles[i].Volume
		case candles[i].Close < candles[i-1].Close:
			obv -= candles[i].Volume
		}
	}
	return obv, nil
}

// RVOL computes Relative Volume: the latest bar's volume against the
// average of the preceding lookback bars (the latest bar is excluded from
// the average). RVOL > 1.5 signals strong participation, < 0.5 signals a
// lack of conviction.
func RVOL(candles []*domain.Candle, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, fmt.Errorf("RVOL lookback must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) < 2 {
		return 0, fmt.Errorf("not enough data (%d) to calculate RVOL: %w", len(candles), ports.ErrInsufficientData)
	}

	last := len(candles) - 1
	start := 0
	if last > lookback {
		start = last - lookback
	}
	sum := 0.0
	for i := start; i < last; i++ {
		sum += candles[i].Volume
	}
	avg := sum / float64(last-start)
	if avg == 0 {
		return 0, fmt.Errorf("average volume is zero: %w", ports.ErrInsufficientData)
	}
	return candles[last].Volume / avg, nil
}

// GapPct computes the opening gap of the latest bar against the previous
// close, as a percentage.
func GapPct(candles []*domain.Candle) (float64, error) {
	if len(candles) < 2 {
		return 0, fmt.Errorf("not enough data (%d) to calculate gap: %w", len(candles), ports.ErrInsufficientData)
	}
	prevClose := candles[len(candles)-2].Close
	if prevClose == 0 {
		return 0, fmt.Errorf("previous close is zero: %w", ports.ErrInsufficientData)
	}
	return (candles[len(candles)-1].Open - prevClose) / prevClose * 100, nil
}
