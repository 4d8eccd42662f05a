package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrNotFound           = errors.New("resource not found")
	ErrTimeout            = errors.New("operation timed out")
	ErrContextCanceled    = errors.New("operation canceled via context")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Core Engine Errors
	// ErrInvalidInput is fatal: malformed, empty, or non-monotonic candle
	// series are rejected without a partial result.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrInsufficientData is indicator-scoped: a single field degrades to
	// nil, the surrounding IndicatorSet is still produced.
	ErrInsufficientData = errors.New("insufficient data for calculation")

	// Data Provider Errors
	ErrProviderUnavailable = errors.New("market data provider is unavailable")
	ErrConnectionFailed    = errors.New("failed to connect to the data provider")
	ErrRateLimited         = errors.New("API rate limit exceeded")
	ErrSymbolNotFound      = errors.New("instrument symbol not found")

	// Database Specific Errors
	ErrDuplicateEntry = errors.New("database record already exists")
	ErrDBConnection   = errors.New("database connection error")
	ErrQueryFailed    = errors.New("database query failed")
)
