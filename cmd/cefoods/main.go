package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rafa37412/CeFoods/internal/app"
	"github.com/Rafa37412/CeFoods/internal/catalog"
	"github.com/Rafa37412/CeFoods/internal/config"
	delivery "github.com/Rafa37412/CeFoods/internal/delivery/http"
	"github.com/Rafa37412/CeFoods/internal/logger"
	"github.com/Rafa37412/CeFoods/internal/messaging"
	"github.com/Rafa37412/CeFoods/internal/messaging/kafka"
	"github.com/Rafa37412/CeFoods/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	dotenvErr := config.LoadDotEnv()

	cfg, err := config.LoadStorefront()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer logger.Sync(log)
	if dotenvErr != nil {
		log.Debugw("No .env file loaded", "err", dotenvErr)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Document store ---
	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	// --- Kafka ---
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		publisher, _ = kafka.NewKafkaBroker(brokers, log)
		log.Infow("Publishing events to Kafka", "brokers", brokers)
	}

	seed, err := catalog.DefaultSeed()
	if err != nil {
		return err
	}

	m := metrics.New()
	a := app.New(app.Options{
		Store:           store,
		Publisher:       publisher,
		Remote:          catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout),
		Recorder:        m,
		Seed:            seed,
		SeedDemoAccount: cfg.SeedDemoAccount,
		PasswordCost:    cfg.PasswordCost,
		Log:             log,
	})
	defer func() {
		if err := a.Close(); err != nil {
			log.Errorw("Failed to close app", "err", err)
		}
	}()
	if err := a.Hydrate(ctx); err != nil {
		return err
	}

	// --- HTTP API ---
	limiter := delivery.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	limiter.StartCleanup(time.Minute, ctx.Done())

	handler := delivery.NewHandler(a, m, limiter, log)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Infow("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}
