package domain

// Direction represents the side of an exposure (BUY for long, SELL for short).
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// IsBuy reports whether the direction is a long exposure.
func (d Direction) IsBuy() bool {
	return d == Buy
}

// Trend classifies the prevailing direction of a single series.
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendNeutral Trend = "NEUTRAL"
	TrendBearish Trend = "BEARISH"
)

// Alignment labels the stacking order of price against the swing MAs.
type Alignment string

const (
	AlignmentGolden        Alignment = "GOLDEN"
	AlignmentDeath         Alignment = "DEATH"
	AlignmentMostlyBullish Alignment = "MOSTLY_BULLISH"
	AlignmentMostlyBearish Alignment = "MOSTLY_BEARISH"
	AlignmentMixed         Alignment = "MIXED"
)

// Signal is the trade signal attached to a screening result.
type Signal string

const (
	SignalOpportunity Signal = "OPPORTUNITY"
	SignalNeutral     Signal = "NEUTRAL"
	SignalAvoid       Signal = "AVOID"
)

// Bias is the overall market posture derived from the regime classifier.
type Bias string

const (
	BiasRiskOn   Bias = "RISK_ON"
	BiasCautious Bias = "CAUTIOUS"
	BiasRiskOff  Bias = "RISK_OFF"
)

// VolatilityRegime buckets the volatility index level.
type VolatilityRegime string

const (
	VolNormal   VolatilityRegime = "NORMAL"
	VolElevated VolatilityRegime = "ELEVATED"
	VolHigh     VolatilityRegime = "HIGH"
	VolExtreme  VolatilityRegime = "EXTREME"
	VolUnknown  VolatilityRegime = "UNKNOWN"
)

// Conviction is the qualitative confidence level behind a candidate trade.
// Each tier maps to a fixed risk budget and concentration cap in the sizing
// engine.
type Conviction string

const (
	ConvictionStrong   Conviction = "strong"
	ConvictionModerate Conviction = "moderate"
	ConvictionWeak     Conviction = "weak"
)

// ParseConviction normalises a conviction string, defaulting to moderate for
// unknown values.
func ParseConviction(s string) Conviction {
	switch Conviction(s) {
	case ConvictionStrong, ConvictionModerate, ConvictionWeak:
		return Conviction(s)
	default:
		return ConvictionModerate
	}
}
