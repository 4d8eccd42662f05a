package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// ATR computes the Average True Range using Wilder's smoothing method.
func ATR(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("ATR period must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) < period+1 {
		return 0, fmt.Errorf("not enough data (%d) to calculate ATR for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}
	return wilderSmooth(trueRanges(candles), period), nil
}
