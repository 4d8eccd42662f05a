package domain

import "time"

// Trade is a completed round-trip recorded in the trade log.
// The sizing engine consumes only the aggregated realized P&L for the
// current trading day (the daily-loss circuit breaker input).
type Trade struct {
	ID        int64     // Unique identifier (from DB)
	Symbol    string    // Trading symbol
	Direction Direction // BUY or SELL
	Amount    float64   // Invested amount in account currency
	PnL       float64   // Realized profit and loss
	OpenedAt  time.Time // Entry timestamp
	ClosedAt  time.Time // Exit timestamp
}
