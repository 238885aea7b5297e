// Package app builds the storefront state object: every service wired over one
// document store, hydrated on start and flushed on close.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/catalog"
	"github.com/Rafa37412/CeFoods/internal/config"
	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
	kvpostgres "github.com/Rafa37412/CeFoods/internal/kv/postgres"
	kvredis "github.com/Rafa37412/CeFoods/internal/kv/redis"
	"github.com/Rafa37412/CeFoods/internal/messaging"
	"github.com/Rafa37412/CeFoods/internal/repository"
	"github.com/Rafa37412/CeFoods/internal/repository/document"
	"github.com/Rafa37412/CeFoods/internal/service"
)

// Options configures New.
type Options struct {
	Store           kv.Store
	Publisher       messaging.Publisher
	Remote          service.RemoteCatalog
	Recorder        service.CheckoutRecorder
	Seed            catalog.Seed
	SeedDemoAccount bool
	PasswordCost    int
	Log             *zap.SugaredLogger
}

// App is the storefront state shared by every request.
type App struct {
	Session    *service.SessionService
	Cart       *service.CartService
	Checkout   *service.CheckoutService
	Storefront *service.StorefrontService

	store     kv.Store
	publisher messaging.Publisher
	accounts  repository.AccountRepository
	stores    repository.StoreRepository
	products  repository.ProductRepository
	sessions  repository.SessionRepository
	seed      catalog.Seed
	seedDemo  bool
	log       *zap.SugaredLogger
}

// New wires the services over opts.Store.
func New(opts Options) *App {
	if opts.Publisher == nil {
		opts.Publisher = messaging.NopPublisher{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}

	accounts := document.NewAccountRepository(opts.Store)
	sessions := document.NewSessionRepository(opts.Store)
	carts := document.NewCartRepository(opts.Store)
	stores := document.NewStoreRepository(opts.Store)
	products := document.NewProductRepository(opts.Store)
	settlement := document.NewSettlementRepository(opts.Store)

	sessionSvc := service.NewSessionService(accounts, sessions, carts, opts.Publisher, opts.Log, opts.PasswordCost)
	return &App{
		Session:    sessionSvc,
		Cart:       service.NewCartService(carts, products, opts.Log),
		Checkout:   service.NewCheckoutService(sessionSvc, carts, settlement, opts.Publisher, opts.Recorder, opts.Log),
		Storefront: service.NewStorefrontService(products, stores, opts.Seed.Categories, sessionSvc, opts.Remote, opts.Publisher, opts.Log),
		store:      opts.Store,
		publisher:  opts.Publisher,
		accounts:   accounts,
		stores:     stores,
		products:   products,
		sessions:   sessions,
		seed:       opts.Seed,
		seedDemo:   opts.SeedDemoAccount,
		log:        opts.Log,
	}
}

// Hydrate writes the seed catalog and demo account into documents that were
// never written, then reports the restored session.
func (a *App) Hydrate(ctx context.Context) error {
	if a.seedDemo && a.seed.DemoAccount.Username != "" {
		demo, err := a.demoAccount()
		if err != nil {
			return err
		}
		if err := a.accounts.Seed(ctx, []entity.Account{demo}); err != nil {
			return fmt.Errorf("failed to seed accounts: %w", err)
		}
	}
	if err := a.stores.Seed(ctx, a.seed.Stores); err != nil {
		return fmt.Errorf("failed to seed stores: %w", err)
	}
	if err := a.products.Seed(ctx, a.seed.Products); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	current, err := a.Session.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if current != nil {
		a.log.Infow("Session restored", "account_id", current.ID, "username", current.Username)
	} else {
		a.log.Infow("Starting anonymous")
	}
	return nil
}

func (a *App) demoAccount() (entity.Account, error) {
	d := a.seed.DemoAccount
	hash, err := a.Session.HashPassword(d.Password)
	if err != nil {
		return entity.Account{}, err
	}
	return entity.Account{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Username:     d.Username,
		PasswordHash: hash,
		Balance:      a.seed.DemoBalance,
		HasStore:     d.StoreID != "",
		StoreID:      d.StoreID,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Logout drops a pending rating flow, then clears the session and cart.
func (a *App) Logout(ctx context.Context) error {
	if err := a.Checkout.Reset(ctx); err != nil {
		return err
	}
	return a.Session.Logout(ctx)
}

// Close flushes the publisher and closes the document store.
func (a *App) Close() error {
	if err := a.publisher.Close(); err != nil {
		a.log.Errorw("Failed to close publisher", "err", err)
	}
	return a.store.Close()
}

// OpenStore opens the document store selected by cfg.StoreBackend.
func OpenStore(ctx context.Context, cfg config.Storefront, log *zap.SugaredLogger) (kv.Store, error) {
	switch cfg.StoreBackend {
	case "postgres":
		store, err := kvpostgres.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "redis":
		store, err := kvredis.Open(ctx, cfg.RedisAddr, cfg.RedisPrefix, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		log.Warnw("Using in-memory document store; state is lost on exit")
		return kv.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
