package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"stockfolio/config"
	"stockfolio/internal/api"
	"stockfolio/internal/app"
	"stockfolio/internal/refresh"
	"stockfolio/models"
	"stockfolio/observability"
	"stockfolio/portfolio"
	"stockfolio/repository"
	"stockfolio/scanner"
	"stockfolio/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		observability.Info("no .env file found, using environment variables")
	}

	observability.InitLogger(os.Getenv("APP_ENV") == "production")
	observability.InitMetrics()

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()

	// Ledger storage, falling back to in-memory when Postgres is unavailable
	var store repository.LedgerStore
	var db app.HealthChecker
	if cfg.HasDatabase() {
		repo, err := repository.NewRepository(ctx, cfg.Database.URL)
		if err != nil {
			observability.Warn("failed to connect to database, using in-memory ledgers", "error", err)
			store = repository.NewMemoryStore()
		} else {
			store = repo
			db = repo
		}
	} else {
		observability.Info("DATABASE_URL not set, using in-memory ledgers")
		store = repository.NewMemoryStore()
	}

	// Price cache
	var cache services.PriceCache
	if cfg.HasRedis() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = services.NewRedisPriceCache(rdb, cfg.Quotes.CacheTTL)
	} else {
		cache = services.NewMemoryPriceCache(cfg.Quotes.CacheTTL)
	}

	// Yahoo serves sector and name lookups regardless of the quote provider
	yahoo := services.NewYahooService(cfg.Yahoo.BaseURL)

	var provider services.QuoteProvider = yahoo
	if cfg.Quotes.Provider == "alpaca" {
		provider = services.NewAlpacaService(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret)
	}
	quotes := services.NewCachedQuoteService(provider, cache)

	manager := portfolio.NewManager(store, yahoo, yahoo)
	engine := portfolio.NewEngine(quotes)

	var stockScanner app.StockScanner
	if cfg.HasFinnhub() {
		finnhub := services.NewFinnhubService(cfg.Finnhub.APIKey, cfg.Finnhub.BaseURL)
		stockScanner = scanner.New(finnhub, nil, scanner.Config{
			MaxDeviationPct: cfg.Scanner.MaxDeviationPct,
			MarketCapMin:    cfg.Scanner.MarketCapMin,
			MaxConcurrent:   cfg.Scanner.MaxConcurrent,
			FetchTimeout:    time.Duration(cfg.Scanner.FetchTimeoutSec) * time.Second,
		})
	} else {
		observability.Info("FINNHUB_API_KEY not set, scanner disabled")
	}

	var refresher *refresh.Refresher
	if cfg.Refresh.Enabled {
		compute := func(ctx context.Context) (models.PortfolioSummary, []portfolio.QuoteResolution, error) {
			open, err := manager.OpenPositions(ctx)
			if err != nil {
				return models.PortfolioSummary{}, nil, err
			}
			closed, err := manager.ClosedPositions(ctx)
			if err != nil {
				return models.PortfolioSummary{}, nil, err
			}
			summary, resolutions := engine.Summary(ctx, open, closed)
			return summary, resolutions, nil
		}
		refresher = refresh.New(compute, cfg.Refresh.Interval)
		if err := refresher.Start(ctx); err != nil {
			observability.Warn("failed to start summary refresh", "error", err)
			refresher = nil
		}
	}

	application := app.New(cfg, manager, engine, stockScanner, db, refresher)
	handler := api.NewHandler(application, cfg)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: api.NewRouter(handler, cfg),
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		observability.Info("server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Fatal("server error", "error", err)
		}
	}()

	<-shutdownCtx.Done()
	observability.Info("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(timeoutCtx); err != nil {
		observability.Error("server shutdown error", "error", err)
	}
	application.Shutdown(timeoutCtx)
}
