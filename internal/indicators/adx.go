package indicators

import (
	"fmt"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// ADX computes the Average Directional Index, a trend-strength measure in
// [0,100]. Directional movements and true ranges are Wilder-smoothed into
// +DI/−DI, the resulting DX sequence is Wilder-smoothed again into ADX.
func ADX(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("ADX period must be positive: %w", ports.ErrInvalidInput)
	}
	// DX smoothing needs a second warmup on top of the DI warmup
	if len(candles) < period*2+1 {
		return 0, fmt.Errorf("not enough data (%d) to calculate ADX for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}

	n := len(candles) - 1
	trs := trueRanges(candles)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < len(candles); i++ {
		up := candles[i].High - candles[i-1].High
		down := candles[i-1].Low - candles[i].Low
		if up > down && up > 0 {
			plusDM[i-1] = up
		}
		if down > up && down > 0 {
			minusDM[i-1] = down
		}
	}

	// Running Wilder smoothing of TR and ±DM, collecting DX values once the
	// DI warmup is complete.
	seed := func(vals []float64) float64 {
		s := 0.0
		for i := 0; i < period; i++ {
			s += vals[i]
		}
		return s / float64(period)
	}
	smTR, smPlus, smMinus := seed(trs), seed(plusDM), seed(minusDM)

	dx := func() float64 {
		if smTR == 0 {
			return 0
		}
		pdi := 100 * smPlus / smTR
		mdi := 100 * smMinus / smTR
		if pdi+mdi == 0 {
			return 0
		}
		return 100 * abs(pdi-mdi) / (pdi + mdi)
	}

	dxs := []float64{dx()}
	for i := period; i < n; i++ {
		smTR = (smTR*float64(period-1) + trs[i]) / float64(period)
		smPlus = (smPlus*float64(period-1) + plusDM[i]) / float64(period)
		smMinus = (smMinus*float64(period-1) + minusDM[i]) / float64(period)
		dxs = append(dxs, dx())
	}

	if len(dxs) < period {
		return 0, fmt.Errorf("not enough data (%d) to smooth DX for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}
	return wilderSmooth(dxs, period), nil
}
