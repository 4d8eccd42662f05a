package indicators

import (
	"time"

	"swingAdvisor/internal/domain"
)

// candlesFromCloses builds an hourly candle series where each bar's OHLC
// collapses to the close. Good enough for close-driven indicators.
func candlesFromCloses(closes []float64) []*domain.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]*domain.Candle, len(closes))
	for i, c := range closes {
		candles[i] = &domain.Candle{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Symbol:    "TESTUSDT",
			Interval:  "1h",
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    100,
		}
	}
	return candles
}

// candlesOHLC builds an hourly series from parallel OHLCV slices.
func candlesOHLC(opens, highs, lows, closes, volumes []float64) []*domain.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]*domain.Candle, len(closes))
	for i := range closes {
		candles[i] = &domain.Candle{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Symbol:    "TESTUSDT",
			Interval:  "1h",
			Open:      opens[i],
			High:      highs[i],
			Low:       lows[i],
			Close:     closes[i],
			Volume:    volumes[i],
		}
	}
	return candles
}

func almostEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
