package domain

import "time"

// Candle represents a single OHLCV bar.
type Candle struct {
	Timestamp time.Time // Start time of the bar
	Symbol    string    // Instrument symbol
	Interval  string    // Bar interval (e.g., "1d", "1h")
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Traded volume
}

// Closes extracts the close prices from a candle series.
func Closes(candles []*Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
