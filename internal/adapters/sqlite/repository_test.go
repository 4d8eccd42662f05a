package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"swingAdvisor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "advisor-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := NewRepository(Config{
		DBPath: dbPath,
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func closedTrade(symbol string, pnl float64, closedAt time.Time) *domain.Trade {
	return &domain.Trade{
		Symbol:    symbol,
		Direction: domain.Buy,
		Amount:    1000.0,
		PnL:       pnl,
		OpenedAt:  closedAt.AddDate(0, 0, -5),
		ClosedAt:  closedAt,
	}
}

func TestRepository_LogTradeAndFindBySymbol(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC)

	id, err := repo.LogTrade(ctx, closedTrade("ETHUSDT", 120.5, now))
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	_, err = repo.LogTrade(ctx, closedTrade("ETHUSDT", -40.0, now.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.LogTrade(ctx, closedTrade("BTCUSDT", 75.0, now))
	require.NoError(t, err)

	trades, err := repo.FindBySymbol(ctx, "ETHUSDT", 10)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// Most recent close first.
	assert.Equal(t, -40.0, trades[0].PnL)
	assert.Equal(t, 120.5, trades[1].PnL)
	assert.Equal(t, "ETHUSDT", trades[0].Symbol)
	assert.Equal(t, domain.Buy, trades[0].Direction)
	assert.Equal(t, 1000.0, trades[0].Amount)
}

func TestRepository_FindBySymbol_Limit(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.LogTrade(ctx, closedTrade("ETHUSDT", float64(i), base.AddDate(0, 0, i)))
		require.NoError(t, err)
	}

	trades, err := repo.FindBySymbol(ctx, "ETHUSDT", 3)
	require.NoError(t, err)
	assert.Len(t, trades, 3)
	assert.Equal(t, 4.0, trades[0].PnL)
}

func TestRepository_RealizedPnLToday(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *Repository) error
		day   time.Time
		want  float64
	}{
		{
			name: "sums only trades closed on the given day",
			setup: func(r *Repository) error {
				ctx := context.Background()
				day := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
				trades := []*domain.Trade{
					closedTrade("ETHUSDT", 100.0, day.Add(9*time.Hour)),
					closedTrade("BTCUSDT", -250.0, day.Add(14*time.Hour)),
					closedTrade("SOLUSDT", 40.0, day.Add(23*time.Hour+59*time.Minute)),
					closedTrade("ETHUSDT", 999.0, day.AddDate(0, 0, -1).Add(12*time.Hour)), // previous day
					closedTrade("BTCUSDT", 999.0, day.AddDate(0, 0, 1)),                    // next day midnight
				}
				for _, trade := range trades {
					if _, err := r.LogTrade(ctx, trade); err != nil {
						return err
					}
				}
				return nil
			},
			day:  time.Date(2024, 6, 14, 18, 45, 0, 0, time.UTC),
			want: -110.0,
		},
		{
			name:  "empty log sums to zero",
			setup: func(r *Repository) error { return nil },
			day:   time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			want:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cleanup := setupTestDB(t)
			defer cleanup()

			require.NoError(t, tt.setup(repo))

			got, err := repo.RealizedPnLToday(context.Background(), tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepository_DefaultsAndClose(t *testing.T) {
	_, err := NewRepository(Config{DBPath: "/tmp/ignored.db"})
	assert.Error(t, err, "a nil logger must be rejected")

	repo, cleanup := setupTestDB(t)
	defer cleanup()
	require.NoError(t, repo.Close())
}
