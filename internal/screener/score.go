package screener

import (
	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/indicators"
)

// Sub-score weights of the composite score.
const (
	weightTrend      = 0.30
	weightMomentum   = 0.25
	weightVolatility = 0.20
	weightSignal     = 0.25
)

// Signal label thresholds.
const (
	opportunityMin  = 65.0
	avoidBelow      = 45.0
	fallingKnifeCap = 40.0
)

// ScreeningResult ranks one instrument on a 0-100 composite score with its
// four sub-scores and the resulting trade signal.
type ScreeningResult struct {
	CSS             float64
	TrendScore      float64
	MomentumScore   float64
	VolatilityScore float64
	SignalScore     float64
	Signal          domain.Signal
}

// Score computes the composite screening score for an instrument's
// indicator set. The post-adjustments after the weighted sum are an ordered
// pipeline; in particular the falling-knife cap runs last, after clamping,
// so a strong bearish trend can never screen above 40 no matter how
// oversold the oscillators read.
func Score(set *indicators.IndicatorSet) *ScreeningResult {
	res := &ScreeningResult{
		TrendScore:      trendScore(set),
		MomentumScore:   momentumScore(set),
		VolatilityScore: volatilityScore(set),
		SignalScore:     signalScore(set),
	}

	css := weightTrend*res.TrendScore +
		weightMomentum*res.MomentumScore +
		weightVolatility*res.VolatilityScore +
		weightSignal*res.SignalScore

	// Ordered adjustment pipeline: volume and alignment bonuses, clamp,
	// then the falling-knife override cap.
	adjustments := []func(float64) float64{
		func(v float64) float64 {
			if set.RVOL == nil {
				return v
			}
			if *set.RVOL > 1.5 {
				return v + 5
			}
			if *set.RVOL < 0.5 {
				return v - 5
			}
			return v
		},
		func(v float64) float64 {
			if set.Alignment == nil {
				return v
			}
			switch set.Alignment.Status {
			case domain.AlignmentMostlyBullish:
				return v + 5
			case domain.AlignmentMostlyBearish:
				return v - 10
			}
			return v
		},
		func(v float64) float64 { return clamp(v, 0, 100) },
		func(v float64) float64 {
			if fallingKnife(set) && v > fallingKnifeCap {
				return fallingKnifeCap
			}
			return v
		},
	}
	for _, adjust := range adjustments {
		css = adjust(css)
	}

	res.CSS = css
	res.Signal = label(set, css)
	return res
}

// fallingKnife marks a strongly trending bearish instrument: oversold
// readings there are continuation, not a reversal entry.
func fallingKnife(set *indicators.IndicatorSet) bool {
	return set.ADX != nil && *set.ADX > 35 && set.Trend == domain.TrendBearish
}

func trendScore(set *indicators.IndicatorSet) float64 {
	var score float64
	switch set.Trend {
	case domain.TrendBullish:
		score = 80
	case domain.TrendBearish:
		score = 20
	default:
		score = 50
	}

	if set.ADX != nil {
		switch {
		case *set.ADX > 35 && set.Trend == domain.TrendBearish:
			score -= 20
		case *set.ADX > 25 && set.Trend == domain.TrendBearish:
			score -= 10
		case *set.ADX > 25 && set.Trend == domain.TrendBullish:
			score += 10
		}
	}
	if set.SMA20 != nil && set.SMA50 != nil && *set.SMA20 > *set.SMA50 {
		score += 10
	}
	return clamp(score, 0, 100)
}

func momentumScore(set *indicators.IndicatorSet) float64 {
	score := 50.0
	if set.RSI != nil {
		if *set.RSI < indicators.RSIOversold {
			score = 80
		} else if *set.RSI > indicators.RSIOverbought {
			score = 30
		}
	}
	if set.Stochastic != nil {
		if set.Stochastic.K < indicators.StochOversold {
			score += 15
		} else if set.Stochastic.K > indicators.StochOverbought {
			score -= 15
		}
	}
	if set.MACD != nil {
		if set.MACD.Histogram > 0 {
			score += 10
		}
		if set.MACD.BullishCrossover() {
			score += 15
		}
	}
	return clamp(score, 0, 100)
}

func volatilityScore(set *indicators.IndicatorSet) float64 {
	score := 50.0
	if atrPct := set.ATRPct(); atrPct != nil {
		switch {
		case *atrPct < 0.01:
			score = 70
		case *atrPct <= 0.03:
			score = 85
		case *atrPct <= 0.05:
			score = 60
		default:
			score = 40
		}
	}
	if set.Bollinger != nil {
		if set.Price < set.Bollinger.Lower {
			score += 10
		} else if set.Price > set.Bollinger.Upper {
			score -= 10
		}
	}
	return clamp(score, 0, 100)
}

func signalScore(set *indicators.IndicatorSet) float64 {
	return clamp(50+float64(set.BullishSignals-set.BearishSignals)*12.5, 0, 100)
}

func label(set *indicators.IndicatorSet, css float64) domain.Signal {
	oversold := set.RSI != nil && *set.RSI < indicators.RSIOversold
	if css >= opportunityMin && (set.Trend == domain.TrendBullish || oversold) {
		return domain.SignalOpportunity
	}
	if css < avoidBelow || set.Trend == domain.TrendBearish {
		return domain.SignalAvoid
	}
	return domain.SignalNeutral
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
