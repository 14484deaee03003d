// seed-rates loads daily exchange rates from a CSV file of
// "currency,date,rate" rows into exchange_rates. Existing rows for the same
// currency and date are overwritten.
//
// Usage: go run ./cmd/seed-rates rates.csv
package main

import (
	"context"
	"fmt"
	"os"

	"textile-finance/internal/config"
	"textile-finance/internal/db"
	"textile-finance/internal/logging"
	"textile-finance/internal/rates"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: seed-rates <rates.csv>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatal("failed to open rates file", zap.Error(err))
	}
	defer f.Close()

	quotes, err := rates.ParseCSV(f)
	if err != nil {
		logger.Fatal("invalid rates file", zap.String("file", os.Args[1]), zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect", zap.Error(err))
	}
	defer pool.Close()

	n, err := rates.SaveQuotes(ctx, pool, quotes)
	if err != nil {
		logger.Fatal("failed to save rates", zap.Error(err))
	}
	logger.Info("exchange rates loaded", zap.Int("count", n), zap.String("file", os.Args[1]))
}
