package ports

import (
	"context"
	"time"

	"swingAdvisor/internal/domain"
)

// MarketDataProvider supplies candle history by symbol and interval.
// The core treats candle series as immutable value inputs; fetching,
// caching and retry policy belong to the adapter.
type MarketDataProvider interface {
	// GetCandles retrieves the most recent candles for the given symbol,
	// ordered by ascending timestamp.
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]*domain.Candle, error)
}

// PortfolioProvider returns the caller's current portfolio snapshot.
type PortfolioProvider interface {
	GetPortfolio(ctx context.Context) (*domain.PortfolioState, error)
}

// OrderExecutor accepts a sized order decision for transmission.
// Order execution is outside the core; this interface only fixes the shape
// of the hand-off.
type OrderExecutor interface {
	PlaceOrder(ctx context.Context, symbol string, amount float64, direction domain.Direction, stopRate float64) error
}

// TradeLog records evaluation outcomes and aggregates realized P&L.
// The sizing engine's daily-loss circuit breaker reads RealizedPnLToday
// through the portfolio snapshot assembled by the caller.
type TradeLog interface {
	// LogTrade appends a completed trade record.
	LogTrade(ctx context.Context, trade *domain.Trade) (int64, error)
	// RealizedPnLToday sums the PnL of trades closed on the given day.
	RealizedPnLToday(ctx context.Context, day time.Time) (float64, error)
	// FindBySymbol retrieves the most recent trades for a symbol, up to a limit.
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error)
}
