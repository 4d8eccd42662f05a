package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"swingAdvisor/config"
	"swingAdvisor/internal/adapters/binanceclient"
	"swingAdvisor/internal/adapters/logger"
	"swingAdvisor/internal/utils"
)

// fetchcandles downloads a candle history range and writes it to CSV for
// offline evaluation runs.
func main() {
	symbol := flag.String("symbol", "BTCUSDT", "instrument symbol")
	interval := flag.String("interval", "1d", "candle interval")
	days := flag.Int("days", 365, "how many days of history to fetch")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	client, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -*days)

	candles, err := client.GetCandlesRange(context.Background(), *symbol, *interval, start, end)
	if err != nil {
		log.Fatalf("Error fetching candles: %v", err)
	}
	appLogger.Info(context.Background(), "Fetched candles", map[string]interface{}{"symbol": *symbol, "count": len(candles)})

	filename := fmt.Sprintf("data/%s_%s_%s_to_%s.csv", *symbol, *interval, start.Format("20060102"), end.Format("20060102"))
	if err := utils.WriteCandlesToCSV(candles, filename); err != nil {
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(context.Background(), "Saved candle history", map[string]interface{}{"filename": filename})
}
