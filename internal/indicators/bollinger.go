package indicators

import (
	"fmt"
	"math"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// BollingerResult holds the three Bollinger Band levels for the latest bar.
type BollingerResult struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger computes Bollinger Bands: middle = SMA(period), bands at
// middle ± stdDev × sample standard deviation over the same window.
func Bollinger(candles []*domain.Candle, period int, stdDev float64) (BollingerResult, error) {
	if period < 2 {
		return BollingerResult{}, fmt.Errorf("Bollinger period must be at least 2: %w", ports.ErrInvalidInput)
	}
	if len(candles) < period {
		return BollingerResult{}, fmt.Errorf("not enough data (%d) to calculate Bollinger for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}

	middle, err := SMA(candles, period)
	if err != nil {
		return BollingerResult{}, err
	}

	// Sample standard deviation over the last period closes
	variance := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		d := candles[i].Close - middle
		variance += d * d
	}
	variance /= float64(period - 1)
	sd := math.Sqrt(variance)

	return BollingerResult{
		Upper:  middle + stdDev*sd,
		Middle: middle,
		Lower:  middle - stdDev*sd,
	}, nil
}
