package regime

import (
	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/indicators"
)

// Volatility bucket thresholds for the index level (VIX-style).
const (
	volNormalBelow   = 20.0
	volElevatedBelow = 25.0
	volHighUpTo      = 30.0
)

// MarketRegime is the market-wide assessment one evaluation cycle works
// under: benchmark trends, the volatility bucket and the resulting position
// sizing multiplier.
type MarketRegime struct {
	BenchmarkTrend   domain.Trend
	SecondaryTrend   domain.Trend
	VolatilityValue  *float64 // nil when no volatility series was available
	VolatilityRegime domain.VolatilityRegime
	Bias             domain.Bias
	SizingAdjustment float64
}

// Classify derives the market regime from the indicator sets of a broad
// benchmark, a secondary growth-tilted benchmark, and a volatility index.
// Any of the sets may be nil; missing data degrades toward the cautious
// defaults rather than failing.
func Classify(benchmark, secondary, volatility *indicators.IndicatorSet) *MarketRegime {
	r := &MarketRegime{
		BenchmarkTrend: benchmarkTrend(benchmark),
		SecondaryTrend: benchmarkTrend(secondary),
	}

	if volatility != nil && volatility.Price > 0 {
		v := volatility.Price
		r.VolatilityValue = &v
		r.VolatilityRegime, r.SizingAdjustment = volatilityBucket(v)
	} else {
		r.VolatilityRegime = domain.VolUnknown
		r.SizingAdjustment = 1.0
	}

	r.Bias = bias(r)
	return r
}

// benchmarkTrend labels a benchmark series: BULLISH when price sits above a
// rising MA stack (price > SMA20 > SMA50), BEARISH on the full inverse,
// NEUTRAL otherwise or when the averages are unavailable.
func benchmarkTrend(set *indicators.IndicatorSet) domain.Trend {
	if set == nil || set.SMA20 == nil || set.SMA50 == nil {
		return domain.TrendNeutral
	}
	switch {
	case set.Price > *set.SMA20 && *set.SMA20 > *set.SMA50:
		return domain.TrendBullish
	case set.Price < *set.SMA20 && *set.SMA20 < *set.SMA50:
		return domain.TrendBearish
	default:
		return domain.TrendNeutral
	}
}

func volatilityBucket(v float64) (domain.VolatilityRegime, float64) {
	switch {
	case v < volNormalBelow:
		return domain.VolNormal, 1.0
	case v < volElevatedBelow:
		return domain.VolElevated, 0.75
	case v <= volHighUpTo:
		return domain.VolHigh, 0.5
	default:
		return domain.VolExtreme, 0.25
	}
}

// bias combines benchmark trends and the volatility level. RISK_ON requires
// both benchmarks bullish and calm volatility; a single bearish benchmark or
// elevated volatility forces RISK_OFF; everything in between, including an
// unknown volatility reading, stays CAUTIOUS.
func bias(r *MarketRegime) domain.Bias {
	if r.BenchmarkTrend == domain.TrendBearish || r.SecondaryTrend == domain.TrendBearish {
		return domain.BiasRiskOff
	}
	if r.VolatilityValue == nil {
		return domain.BiasCautious
	}
	v := *r.VolatilityValue
	if v >= volElevatedBelow {
		return domain.BiasRiskOff
	}
	if r.BenchmarkTrend == domain.TrendBullish && r.SecondaryTrend == domain.TrendBullish && v < volNormalBelow {
		return domain.BiasRiskOn
	}
	return domain.BiasCautious
}
