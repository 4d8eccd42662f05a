package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// MACDResult holds the MACD line, signal line and histogram for the most
// recent bar. PrevHistogram is the histogram one bar earlier, used for
// crossover detection.
type MACDResult struct {
	Line          float64
	Signal        float64
	Histogram     float64
	PrevHistogram float64
}

// BullishCrossover reports whether the histogram crossed from non-positive
// to positive on the latest bar.
func (m MACDResult) BullishCrossover() bool {
	return m.Histogram > 0 && m.PrevHistogram <= 0
}

// BearishCrossover reports whether the histogram crossed from non-negative
// to negative on the latest bar.
func (m MACDResult) BearishCrossover() bool {
	return m.Histogram < 0 && m.PrevHistogram >= 0
}

// MACD computes Moving Average Convergence Divergence:
// line = EMA(fast) - EMA(slow), signal = EMA(signalPeriod) of the line,
// histogram = line - signal.
func MACD(candles []*domain.Candle, fast, slow, signalPeriod int) (MACDResult, error) {
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 || fast >= slow {
		return MACDResult{}, fmt.Errorf("invalid MACD periods (%d,%d,%d): %w", fast, slow, signalPeriod, ports.ErrInvalidInput)
	}
	if len(candles) < slow {
		return MACDResult{}, fmt.Errorf("not enough data (%d) to calculate MACD for slow period %d: %w", len(candles), slow, ports.ErrInsufficientData)
	}

	closes := domain.Closes(candles)
	emaFast := emaSeries(closes, fast)
	emaSlow := emaSeries(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signal := emaSeries(line, signalPeriod)

	last := len(closes) - 1
	res := MACDResult{
		Line:      line[last],
		Signal:    signal[last],
		Histogram: line[last] - signal[last],
	}
	if last > 0 {
		res.PrevHistogram = line[last-1] - signal[last-1]
	} else {
		res.PrevHistogram = res.Histogram
	}
	return res, nil
}
