package indicators

import (
	"errors"
	"math"
	"testing"
	"time"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

func trendingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 0.5*float64(i) + 2*math.Sin(float64(i)/5)
	}
	return closes
}

func TestComputeSet_FullHistory(t *testing.T) {
	set, err := ComputeSet(candlesFromCloses(trendingCloses(250)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for name, field := range map[string]*float64{
		"SMA20":  set.SMA20,
		"SMA50":  set.SMA50,
		"SMA200": set.SMA200,
		"EMA21":  set.EMA21,
		"RSI":    set.RSI,
		"ATR14":  set.ATR14,
		"ATR22":  set.ATR22,
		"ADX":    set.ADX,
		"RVOL":   set.RVOL,
	} {
		if field == nil {
			t.Errorf("Expected %s to be computed with 250 bars", name)
		}
	}
	if set.MACD == nil || set.Bollinger == nil || set.Stochastic == nil {
		t.Error("Expected oscillator results with 250 bars")
	}
	if set.Levels == nil || set.Fibonacci == nil || set.SuperTrend == nil {
		t.Error("Expected level and trend results with 250 bars")
	}
	if set.Alignment == nil {
		t.Fatal("Expected MA alignment with 250 bars")
	}

	// A rising series stacks price above the slower averages.
	if set.Alignment.Status != domain.AlignmentGolden {
		t.Errorf("Expected golden alignment in an uptrend, got %s", set.Alignment.Status)
	}
	if set.Price <= 0 {
		t.Errorf("Unexpected price %f", set.Price)
	}
	if len(set.Signals) == 0 {
		t.Error("Expected at least one signal for a trending series")
	}
}

func TestComputeSet_ShortHistoryDegrades(t *testing.T) {
	// 60 bars: enough for the fast indicators, not for SMA200.
	set, err := ComputeSet(candlesFromCloses(trendingCloses(60)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if set.SMA200 != nil {
		t.Error("Expected SMA200 to be nil with 60 bars")
	}
	if set.SMA20 == nil || set.SMA50 == nil || set.RSI == nil {
		t.Error("Expected fast indicators to survive 60 bars")
	}
	if set.Alignment == nil {
		t.Error("Expected a partial alignment without SMA200")
	}
}

func TestComputeSet_MinimalHistory(t *testing.T) {
	// A handful of bars: nearly everything degrades, the set still builds.
	set, err := ComputeSet(candlesFromCloses([]float64{100, 101, 102}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if set.SMA20 != nil || set.RSI != nil || set.MACD != nil || set.ADX != nil {
		t.Error("Expected indicators to be nil with 3 bars")
	}
	if set.GapPct == nil || set.OBV == nil {
		t.Error("Expected two-bar indicators to survive 3 bars")
	}
	if set.Price != 102 {
		t.Errorf("Expected price 102, got %f", set.Price)
	}
}

func TestComputeSet_FatalInputs(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		candles []*domain.Candle
	}{
		{name: "empty series", candles: nil},
		{
			name: "nil candle",
			candles: []*domain.Candle{
				{Timestamp: base, Open: 100, High: 101, Low: 99, Close: 100},
				nil,
			},
		},
		{
			name: "non-monotonic timestamps",
			candles: []*domain.Candle{
				{Timestamp: base.Add(time.Hour), Open: 100, High: 101, Low: 99, Close: 100},
				{Timestamp: base, Open: 100, High: 101, Low: 99, Close: 100},
			},
		},
		{
			name: "high below low",
			candles: []*domain.Candle{
				{Timestamp: base, Open: 100, High: 99, Low: 101, Close: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeSet(tt.candles); !errors.Is(err, ports.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestIndicatorSet_TallySignals(t *testing.T) {
	fl := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		set      IndicatorSet
		bullish  int
		bearish  int
		expected domain.Trend
	}{
		{
			name: "oversold bounce setup",
			set: IndicatorSet{
				Price:      95,
				RSI:        fl(25),
				SMA20:      fl(100),
				SMA50:      fl(98),
				Stochastic: &StochasticResult{K: 15, D: 18},
			},
			bullish:  3,
			bearish:  0,
			expected: domain.TrendBullish,
		},
		{
			name: "overbought breakdown",
			set: IndicatorSet{
				Price: 105,
				RSI:   fl(75),
				MACD:  &MACDResult{Histogram: -0.5, PrevHistogram: 0.2},
				SMA20: fl(98),
				SMA50: fl(100),
			},
			bullish:  0,
			bearish:  3,
			expected: domain.TrendBearish,
		},
		{
			name: "observational notes carry no vote",
			set: IndicatorSet{
				Price:     120,
				Bollinger: &BollingerResult{Upper: 110, Middle: 100, Lower: 90},
				RVOL:      fl(2.5),
				GapPct:    fl(3.0),
				ADX:       fl(40),
			},
			bullish:  0,
			bearish:  0,
			expected: domain.TrendNeutral,
		},
		{
			name: "golden alignment votes bullish",
			set: IndicatorSet{
				Price:     110,
				Alignment: &AlignmentResult{Status: domain.AlignmentGolden},
			},
			bullish:  1,
			bearish:  0,
			expected: domain.TrendBullish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set.tallySignals()
			if tt.set.BullishSignals != tt.bullish || tt.set.BearishSignals != tt.bearish {
				t.Errorf("Expected %d bullish / %d bearish, got %d / %d (%v)",
					tt.bullish, tt.bearish, tt.set.BullishSignals, tt.set.BearishSignals, tt.set.Signals)
			}
			if tt.set.Trend != tt.expected {
				t.Errorf("Expected trend %s, got %s", tt.expected, tt.set.Trend)
			}
		})
	}
}
