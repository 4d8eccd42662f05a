package domain

// Position is an open holding inside a portfolio snapshot.
type Position struct {
	Symbol    string    // Trading symbol (e.g., "AAPL")
	Amount    float64   // Invested amount in account currency
	Direction Direction // BUY (long) or SELL (short)
	Leverage  float64   // 1.0 for unleveraged positions
}

// PortfolioState is a point-in-time snapshot of the caller's account.
// The core never mutates it; a fresh snapshot is supplied per sizing call.
type PortfolioState struct {
	TotalValue       float64     // Invested + cash + unrealized P&L
	CashAvailable    float64     // Uninvested cash
	TotalInvested    float64     // Sum of open position amounts
	Positions        []*Position // Current open positions
	RealizedPnLToday float64     // Realized P&L since start of trading day
}

// ExposurePct returns the invested fraction of the portfolio, in [0,1].
// A zero-value portfolio reports zero exposure rather than dividing by zero.
func (p *PortfolioState) ExposurePct() float64 {
	if p.TotalValue <= 0 {
		return 0
	}
	return p.TotalInvested / p.TotalValue
}
