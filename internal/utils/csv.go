package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"swingAdvisor/internal/domain"
)

// WriteCandlesToCSV saves a candle series for offline evaluation runs.
func WriteCandlesToCSV(candles []*domain.Candle, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"timestamp", "symbol", "interval", "open", "high", "low", "close", "volume"})

	for _, c := range candles {
		writer.Write([]string{
			c.Timestamp.Format(time.RFC3339),
			c.Symbol,
			c.Interval,
			strconv.FormatFloat(c.Open, 'f', -1, 64),
			strconv.FormatFloat(c.High, 'f', -1, 64),
			strconv.FormatFloat(c.Low, 'f', -1, 64),
			strconv.FormatFloat(c.Close, 'f', -1, 64),
			strconv.FormatFloat(c.Volume, 'f', -1, 64),
		})
	}
	return writer.Error()
}

// ReadCandlesFromCSV loads a candle series written by WriteCandlesToCSV.
func ReadCandlesFromCSV(filename string) ([]*domain.Candle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV %s contains no candle rows", filename)
	}

	candles := make([]*domain.Candle, 0, len(records)-1)
	for i, rec := range records[1:] { // skip header
		if len(rec) != 8 {
			return nil, fmt.Errorf("CSV %s row %d: expected 8 columns, got %d", filename, i+2, len(rec))
		}
		ts, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			return nil, fmt.Errorf("CSV %s row %d: invalid timestamp %q: %w", filename, i+2, rec[0], err)
		}
		vals := make([]float64, 5)
		for j, field := range rec[3:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("CSV %s row %d: invalid number %q: %w", filename, i+2, field, err)
			}
			vals[j] = v
		}
		candles = append(candles, &domain.Candle{
			Timestamp: ts,
			Symbol:    rec[1],
			Interval:  rec[2],
			Open:      vals[0],
			High:      vals[1],
			Low:       vals[2],
			Close:     vals[3],
			Volume:    vals[4],
		})
	}
	return candles, nil
}
