package indicators

import (
	"errors"
	"testing"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name          string
		closes        []float64
		period        int
		expectedValue float64
		expectError   bool
	}{
		{
			name:          "window over trailing bars",
			closes:        []float64{100, 102, 104, 106, 108},
			period:        3,
			expectedValue: 106.0, // (104+106+108)/3
		},
		{
			name:          "period equals series length",
			closes:        []float64{100, 102, 104, 106, 108},
			period:        5,
			expectedValue: 104.0,
		},
		{
			name:        "insufficient data",
			closes:      []float64{100, 102},
			period:      3,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := SMA(candlesFromCloses(tt.closes), tt.period)
			if tt.expectError {
				if !errors.Is(err, ports.ErrInsufficientData) {
					t.Errorf("Expected ErrInsufficientData, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !almostEqual(value, tt.expectedValue, 0.0001) {
				t.Errorf("Expected value %f, got %f", tt.expectedValue, value)
			}
		})
	}
}

func TestEMA(t *testing.T) {
	// Constant series: EMA must equal the constant regardless of period.
	closes := []float64{50, 50, 50, 50, 50, 50}
	value, err := EMA(candlesFromCloses(closes), 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !almostEqual(value, 50.0, 0.0001) {
		t.Errorf("Expected 50.0 for constant series, got %f", value)
	}

	// Hand-computed recursion: seed 100, multiplier 0.5 for period 3.
	value, err = EMA(candlesFromCloses([]float64{100, 104, 108, 112}), 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// 100 -> 102 -> 105 -> 108.5
	if !almostEqual(value, 108.5, 0.0001) {
		t.Errorf("Expected 108.5, got %f", value)
	}

	if _, err := EMA(candlesFromCloses([]float64{100, 104}), 3); !errors.Is(err, ports.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestEMA_ReactsFasterThanSMA(t *testing.T) {
	// After a late jump the EMA must sit closer to the new price than the
	// SMA over the same period.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	closes[28], closes[29] = 120, 120
	candles := candlesFromCloses(closes)

	ema, err := EMA(candles, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sma, err := SMA(candles, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ema <= sma {
		t.Errorf("Expected EMA (%f) above SMA (%f) after a late jump", ema, sma)
	}
}

func TestMAAlignment(t *testing.T) {
	tests := []struct {
		name                       string
		price, ema21, sma50, sma200 float64
		expected                   domain.Alignment
	}{
		{
			name:  "golden alignment",
			price: 110, ema21: 105, sma50: 100, sma200: 95,
			expected: domain.AlignmentGolden,
		},
		{
			name:  "death alignment",
			price: 95, ema21: 100, sma50: 105, sma200: 110,
			expected: domain.AlignmentDeath,
		},
		{
			name:  "mostly bullish",
			price: 110, ema21: 105, sma50: 90, sma200: 95,
			expected: domain.AlignmentMostlyBullish,
		},
		{
			name:  "mostly bearish",
			price: 95, ema21: 100, sma50: 110, sma200: 105,
			expected: domain.AlignmentMostlyBearish,
		},
		{
			name:  "equal values are mixed",
			price: 100, ema21: 100, sma50: 100, sma200: 100,
			expected: domain.AlignmentMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := MAAlignment(tt.price, tt.ema21, tt.sma50, tt.sma200)
			if res.Status != tt.expected {
				t.Errorf("Expected %s, got %s (bull %d, bear %d)", tt.expected, res.Status, res.BullishLayers, res.BearishLayers)
			}
		})
	}
}
