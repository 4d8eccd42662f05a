package indicators

import (
	"errors"
	"fmt"
	"math"

	"swingAdvisor/internal/domain"
	"swingAdvisor/internal/ports"
)

// Standard swing-trading periods.
const (
	RSIPeriod        = 14
	MACDFast         = 12
	MACDSlow         = 26
	MACDSignalPeriod = 9
	BollingerPeriod  = 20
	BollingerStdDev  = 2.0
	ATRPeriodShort   = 14
	ATRPeriodLong    = 22
	StochKPeriod     = 14
	StochDPeriod     = 3
	ADXPeriod        = 14
	LevelsWindow     = 20
	RVOLLookback     = 30
	SuperTrendPeriod = 14
	SuperTrendMult   = 3.0
)

// Signal thresholds used by the signal tally and downstream scoring.
const (
	RSIOversold     = 30.0
	RSIOverbought   = 70.0
	StochOversold   = 20.0
	StochOverbought = 80.0
	ADXTrending     = 25.0
)

// IndicatorSet is the full set of technical indicators for one instrument,
// computed from a single candle series. Pointer fields are nil when the
// series is too short for that indicator; the set itself is still produced.
type IndicatorSet struct {
	Price float64 // latest close

	SMA20  *float64
	SMA50  *float64
	SMA200 *float64
	EMA8   *float64
	EMA12  *float64
	EMA21  *float64
	EMA26  *float64

	RSI        *float64
	MACD       *MACDResult
	Bollinger  *BollingerResult
	ATR14      *float64
	ATR22      *float64
	Stochastic *StochasticResult
	ADX        *float64
	OBV        *float64
	RVOL       *float64
	GapPct     *float64

	Levels    *LevelsResult
	Fibonacci *FibonacciLevels
	Alignment *AlignmentResult

	SuperTrend *SuperTrendResult

	// Trend vote derived from the bullish vs bearish signal counts.
	Trend          domain.Trend
	Signals        []string
	BullishSignals int
	BearishSignals int
}

// ATRPct returns ATR(14) as a fraction of the latest close, or nil when
// either value is unavailable.
func (s *IndicatorSet) ATRPct() *float64 {
	if s.ATR14 == nil || s.Price <= 0 {
		return nil
	}
	v := *s.ATR14 / s.Price
	return &v
}

// ComputeSet computes every indicator for the given candle series.
// A malformed series is a fatal error; short history degrades individual
// fields to nil without failing the whole set.
func ComputeSet(candles []*domain.Candle) (*IndicatorSet, error) {
	if err := ValidateSeries(candles); err != nil {
		return nil, err
	}

	set := &IndicatorSet{Price: candles[len(candles)-1].Close}

	// Each computation that fails with ErrInsufficientData leaves its field
	// nil; any other error aborts the set.
	var failed error
	capture := func(err error) bool {
		if err == nil {
			return true
		}
		if errors.Is(err, ports.ErrInsufficientData) {
			return false
		}
		if failed == nil {
			failed = err
		}
		return false
	}
	fl := func(compute func() (float64, error)) *float64 {
		v, err := compute()
		if !capture(err) {
			return nil
		}
		return &v
	}

	set.SMA20 = fl(func() (float64, error) { return SMA(candles, 20) })
	set.SMA50 = fl(func() (float64, error) { return SMA(candles, 50) })
	set.SMA200 = fl(func() (float64, error) { return SMA(candles, 200) })
	set.EMA8 = fl(func() (float64, error) { return EMA(candles, 8) })
	set.EMA12 = fl(func() (float64, error) { return EMA(candles, 12) })
	set.EMA21 = fl(func() (float64, error) { return EMA(candles, 21) })
	set.EMA26 = fl(func() (float64, error) { return EMA(candles, 26) })
	set.RSI = fl(func() (float64, error) { return RSI(candles, RSIPeriod) })
	set.ATR14 = fl(func() (float64, error) { return ATR(candles, ATRPeriodShort) })
	set.ATR22 = fl(func() (float64, error) { return ATR(candles, ATRPeriodLong) })
	set.ADX = fl(func() (float64, error) { return ADX(candles, ADXPeriod) })
	set.OBV = fl(func() (float64, error) { return OBV(candles) })
	set.RVOL = fl(func() (float64, error) { return RVOL(candles, RVOLLookback) })
	set.GapPct = fl(func() (float64, error) { return GapPct(candles) })

	if macd, err := MACD(candles, MACDFast, MACDSlow, MACDSignalPeriod); capture(err) {
		set.MACD = &macd
	}
	if bb, err := Bollinger(candles, BollingerPeriod, BollingerStdDev); capture(err) {
		set.Bollinger = &bb
	}
	if st, err := Stochastic(candles, StochKPeriod, StochDPeriod); capture(err) {
		set.Stochastic = &st
	}
	if lv, err := SupportResistance(candles, LevelsWindow); capture(err) {
		set.Levels = &lv
	}
	if fib, err := Fibonacci(candles); capture(err) {
		set.Fibonacci = &fib
	}
	if st, err := SuperTrend(candles, SuperTrendPeriod, SuperTrendMult); capture(err) {
		set.SuperTrend = &st
	}

	if failed != nil {
		return nil, failed
	}

	if set.EMA21 != nil && set.SMA50 != nil {
		// With fewer than 200 bars the comparison against SMA200 drops out,
		// leaving a partial alignment from the remaining layers.
		sma200 := math.NaN()
		if set.SMA200 != nil {
			sma200 = *set.SMA200
		}
		al := MAAlignment(set.Price, *set.EMA21, *set.SMA50, sma200)
		set.Alignment = &al
	}

	set.tallySignals()
	return set, nil
}

// tallySignals accumulates the human-readable signal list and the
// bullish/bearish counts behind the trend vote. Observational notes (band
// touches, volume, gaps, trend strength) are listed but carry no vote.
func (s *IndicatorSet) tallySignals() {
	add := func(polarity int, format string, args ...interface{}) {
		s.Signals = append(s.Signals, fmt.Sprintf(format, args...))
		if polarity > 0 {
			s.BullishSignals++
		} else if polarity < 0 {
			s.BearishSignals++
		}
	}

	if s.RSI != nil {
		if *s.RSI < RSIOversold {
			add(+1, "RSI oversold (bullish)")
		} else if *s.RSI > RSIOverbought {
			add(-1, "RSI overbought (bearish)")
		}
	}
	if s.MACD != nil {
		if s.MACD.BullishCrossover() {
			add(+1, "MACD bullish crossover")
		} else if s.MACD.BearishCrossover() {
			add(-1, "MACD bearish crossover")
		}
	}
	if s.Bollinger != nil {
		if s.Price < s.Bollinger.Lower {
			add(0, "Price below lower band (oversold)")
		} else if s.Price > s.Bollinger.Upper {
			add(0, "Price above upper band (overbought)")
		}
	}
	if s.SMA20 != nil && s.SMA50 != nil {
		if *s.SMA20 > *s.SMA50 {
			add(+1, "SMA20 > SMA50 (bullish)")
		} else {
			add(-1, "SMA20 < SMA50 (bearish)")
		}
	}
	if s.Alignment != nil {
		switch s.Alignment.Status {
		case domain.AlignmentGolden:
			add(+1, "Golden MA alignment (bullish)")
		case domain.AlignmentDeath:
			add(-1, "Death MA alignment (bearish)")
		}
	}
	if s.RVOL != nil {
		switch {
		case *s.RVOL >= 2.0:
			add(0, "RVOL %.1fx very high volume", *s.RVOL)
		case *s.RVOL >= 1.5:
			add(0, "RVOL %.1fx above average volume", *s.RVOL)
		case *s.RVOL < 0.5:
			add(0, "RVOL %.1fx low volume (weak conviction)", *s.RVOL)
		}
	}
	if s.GapPct != nil && abs(*s.GapPct) >= 1.0 {
		direction := "up"
		if *s.GapPct < 0 {
			direction = "down"
		}
		add(0, "Gap %s %.1f%%", direction, abs(*s.GapPct))
	}
	if s.Stochastic != nil {
		if s.Stochastic.K < StochOversold {
			add(+1, "Stochastic oversold (bullish)")
		} else if s.Stochastic.K > StochOverbought {
			add(-1, "Stochastic overbought (bearish)")
		}
	}
	if s.ADX != nil {
		if *s.ADX > ADXTrending {
			add(0, "ADX %.0f strong trend", *s.ADX)
		} else {
			add(0, "ADX %.0f weak trend", *s.ADX)
		}
	}

	switch {
	case s.BullishSignals > s.BearishSignals:
		s.Trend = domain.TrendBullish
	case s.BearishSignals > s.BullishSignals:
		s.Trend = domain.TrendBearish
	default:
		s.Trend = domain.TrendNeutral
	}
}
