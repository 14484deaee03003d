package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"textile-finance/internal/adapters/cli"
	"textile-finance/internal/adapters/repl"
	"textile-finance/internal/ai"
	"textile-finance/internal/app"
	"textile-finance/internal/config"
	"textile-finance/internal/db"
	"textile-finance/internal/logging"
	"textile-finance/internal/rates"
	"textile-finance/internal/store"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// stdout carries command output.
	logger, err := logging.New(cfg.LogLevel, "stderr")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var (
		ledger     store.LedgerStore
		rules      store.AccountResolver
		rateSource rates.Source
		classifier ai.CostClassifier
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Unable to connect to database", zap.Error(err))
		}
		defer pool.Close()
		ledger = store.NewLedger(pool)
		rules = store.NewAccountRules(pool)
		rateSource = rates.NewDBSource(pool, cfg.BaseCurrency, cfg.RateCacheTTL)
	}
	if cfg.OpenAIAPIKey != "" {
		classifier = ai.NewAgent(cfg.OpenAIAPIKey)
	}

	svc := app.NewAppService(ledger, rules, rateSource, classifier, logger)

	if len(os.Args) > 1 {
		if err := cli.Run(ctx, svc, os.Args[1:], os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}
