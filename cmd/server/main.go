package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	webAdapter "textile-finance/internal/adapters/web"
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
		panic(err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		ledger     store.LedgerStore
		rules      store.AccountResolver
		rateSource rates.Source
		classifier ai.CostClassifier
	)

	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		ledger = store.NewLedger(pool)
		rules = store.NewAccountRules(pool)
		rateSource = rates.NewDBSource(pool, cfg.BaseCurrency, cfg.RateCacheTTL)
	} else {
		logger.Warn("DATABASE_URL is not set, ledger and rate lookups are disabled")
	}

	if cfg.OpenAIAPIKey != "" {
		classifier = ai.NewAgent(cfg.OpenAIAPIKey)
	} else {
		logger.Warn("OPENAI_API_KEY is not set, cost line classification is disabled")
	}

	svc := app.NewAppService(ledger, rules, rateSource, classifier, logger)
	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.MaxBodyBytes, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("server starting", zap.String("port", cfg.ServerPort), zap.String("base_currency", cfg.BaseCurrency))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
	logger.Info("server stopped")
}
