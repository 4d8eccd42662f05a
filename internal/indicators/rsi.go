package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// RSI computes the Relative Strength Index using Wilder's smoothing method.
func RSI(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("RSI period must be positive: %w", ports.ErrInvalidInput)
	}
	if len(candles) <= period {
		return 0, fmt.Errorf("not enough data (%d) to calculate RSI for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}

	// Calculate price changes
	changes := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		changes = append(changes, candles[i].Close-candles[i-1].Close)
	}

	// Calculate initial average gain and loss
	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		if changes[i] > 0 {
			avgGain += changes[i]
		} else {
			avgLoss -= changes[i]
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Calculate smoothed average gain and loss using Wilder's smoothing
	for i := period; i < len(changes); i++ {
		if changes[i] > 0 {
			avgGain = (avgGain*float64(period-1) + changes[i]) / float64(period)
			avgLoss = (avgLoss * float64(period-1)) / float64(period)
		} else {
			avgGain = (avgGain * float64(period-1)) / float64(period)
			avgLoss = (avgLoss*float64(period-1) - changes[i]) / float64(period)
		}
	}

	// Handle edge cases
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50, nil // Neutral if no change
		}
		return 100, nil // Max RSI if only gains
	}

	rs := avgGain / avgLoss
	rsi := 100 - (100 / (1 + rs))

	// Ensure RSI is within bounds
	if rsi > 100 {
		rsi = 100
	} else if rsi < 0 {
		rsi = 0
	}

	return rsi, nil
}
