package main

import (
	"context"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"

	"swingAdvisor/config"
	"swingAdvisor/internal/adapters/binanceclient"
	"swingAdvisor/internal/adapters/logger"
	"swingAdvisor/internal/adapters/sqlite"
	"swingAdvisor/internal/adapters/staticportfolio"
	"swingAdvisor/internal/app"
	"swingAdvisor/internal/domain"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Trade Log (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize trade log")
		log.Fatalf("FATAL: Failed to initialize trade log: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing trade log")
		}
	}()

	// 4. Initialize Market Data Client (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	// 5. Initialize Portfolio Provider from the declared snapshot
	invested := 0.0
	for _, pos := range cfg.Positions {
		invested += pos.Amount
	}
	portfolio, err := staticportfolio.New(&domain.PortfolioState{
		TotalValue:    cfg.PortfolioValue,
		CashAvailable: cfg.PortfolioCash,
		TotalInvested: invested,
		Positions:     cfg.Positions,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Invalid portfolio snapshot")
		log.Fatalf("FATAL: Invalid portfolio snapshot: %v", err)
	}

	// 6. Initialize Application Service
	advisor, err := app.NewAdvisorService(cfg, appLogger, binanceClient, portfolio, repo)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize advisor service")
		log.Fatalf("FATAL: Failed to initialize advisor service: %v", err)
	}

	// 7. Run one evaluation cycle
	evaluations, err := advisor.EvaluateAll(context.Background())
	if err != nil {
		appLogger.Error(context.Background(), err, "Evaluation cycle failed")
		log.Fatalf("FATAL: Evaluation cycle failed: %v", err)
	}
	if len(evaluations) == 0 {
		appLogger.Warn(context.Background(), "No instrument could be evaluated")
		os.Exit(1)
	}

	printReport(evaluations)
}

// printReport renders the evaluation cycle as a stdout report; structured
// details are already on the log stream.
func printReport(evaluations []*app.Evaluation) {
	fmt.Printf("%-10s %6s %-12s %10s %8s %10s %-15s\n",
		"SYMBOL", "CSS", "SIGNAL", "STOP", "STOP%", "SIZE", "CONSTRAINT")
	for _, e := range evaluations {
		sized := fmt.Sprintf("%.2f", e.Sizing.Amount)
		constraint := string(e.Sizing.BindingConstraint)
		if e.Sizing.Rejected {
			sized = "-"
			constraint += " (rejected)"
		}
		fmt.Printf("%-10s %6.1f %-12s %10.2f %7.1f%% %10s %-15s\n",
			e.Symbol,
			e.Screening.CSS,
			e.Screening.Signal,
			e.Stop.SLRate,
			e.Stop.SLPct*100,
			sized,
			constraint,
		)
		for _, signal := range e.Indicators.Signals {
			fmt.Printf("    %s\n", signal)
		}
	}
}
