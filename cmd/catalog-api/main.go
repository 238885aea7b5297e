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

	"github.com/Rafa37412/CeFoods/internal/catalog"
	"github.com/Rafa37412/CeFoods/internal/config"
	delivery "github.com/Rafa37412/CeFoods/internal/delivery/http"
	"github.com/Rafa37412/CeFoods/internal/logger"
	"github.com/Rafa37412/CeFoods/internal/messaging"
	"github.com/Rafa37412/CeFoods/internal/messaging/kafka"
	"github.com/Rafa37412/CeFoods/internal/metrics"
	"github.com/Rafa37412/CeFoods/internal/repository/sqlstore"
	"github.com/Rafa37412/CeFoods/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	dotenvErr := config.LoadDotEnv()

	cfg, err := config.LoadCatalogAPI()
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

	// --- Database ---
	db, err := sqlstore.Open(ctx, cfg.Driver, cfg.DSN(), log)
	if err != nil {
		return err
	}
	defer db.Close()

	seed, err := catalog.DefaultSeed()
	if err != nil {
		return err
	}
	repo := sqlstore.NewProductRepository(db)
	if err := repo.Seed(ctx, seed.Products); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	m := metrics.New()
	catalogSvc := service.NewCatalogService(repo, log)

	// --- Kafka ---
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		publisher, subscriber := kafka.NewKafkaBroker(brokers, log)
		defer publisher.Close()

		consumers := map[string]func(context.Context, []byte) error{
			messaging.TopicProductListed: catalogSvc.HandleProductListed,
			messaging.TopicProductRated:  catalogSvc.HandleProductRated,
		}
		for topic, handle := range consumers {
			go subscriber.Consume(ctx, topic, cfg.Kafka.GroupID, func(ctx context.Context, payload []byte) error {
				err := handle(ctx, payload)
				m.RecordEvent(topic, err)
				return err
			})
		}
		log.Infow("Kafka consumers started", "brokers", brokers, "group", cfg.Kafka.GroupID)
	}

	// --- HTTP API ---
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           delivery.NewCatalogHandler(catalogSvc, m, log).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Catalog API starting", "addr", cfg.Addr, "driver", cfg.Driver)
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
