package risk

import "swingAdvisor/internal/domain"

// RiskLimits bounds every sizing decision. A configuration value; never
// mutated by the engine.
type RiskLimits struct {
	MinTrade            float64
	MaxTrade            float64
	MaxConcentrationPct float64 // max fraction of portfolio value per instrument
	MaxExposurePct      float64 // max invested fraction of portfolio value
	MaxLeverage         float64
	DailyLossBreakerPct float64 // daily loss fraction that halts new exposure
	CashBuffer          float64 // cash kept untouched, doubled above 80% exposure
}

// ConservativeLimits is the default profile.
func ConservativeLimits() RiskLimits {
	return RiskLimits{
		MinTrade:            10,
		MaxTrade:            1000,
		MaxConcentrationPct: 0.10,
		MaxExposurePct:      0.90,
		MaxLeverage:         1.0,
		DailyLossBreakerPct: 0.03,
		CashBuffer:          200,
	}
}

// AggressiveLimits widens trade bounds and caps for larger accounts.
func AggressiveLimits() RiskLimits {
	return RiskLimits{
		MinTrade:            50,
		MaxTrade:            5000,
		MaxConcentrationPct: 0.20,
		MaxExposurePct:      0.95,
		MaxLeverage:         1.0,
		DailyLossBreakerPct: 0.05,
		CashBuffer:          200,
	}
}

// LimitsForProfile maps a profile name to its limits, defaulting to the
// conservative profile for anything unrecognized.
func LimitsForProfile(name string) RiskLimits {
	if name == "aggressive" {
		return AggressiveLimits()
	}
	return ConservativeLimits()
}

// convictionTier maps a conviction level to its risk budget and per-trade
// concentration cap, both as fractions of portfolio value.
type convictionTier struct {
	riskPct          float64
	concentrationPct float64
}

var convictionTiers = map[domain.Conviction]convictionTier{
	domain.ConvictionStrong:   {riskPct: 0.02, concentrationPct: 0.08},
	domain.ConvictionModerate: {riskPct: 0.015, concentrationPct: 0.05},
	domain.ConvictionWeak:     {riskPct: 0.01, concentrationPct: 0.03},
}

func tierFor(c domain.Conviction) convictionTier {
	if tier, ok := convictionTiers[c]; ok {
		return tier
	}
	return convictionTiers[domain.ConvictionModerate]
}
