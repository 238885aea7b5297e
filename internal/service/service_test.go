package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
	"github.com/Rafa37412/CeFoods/internal/repository"
	"github.com/Rafa37412/CeFoods/internal/repository/document"
)

type published struct {
	topic string
	key   string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, key: key, event: event})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.topic)
	}
	return out
}

type fixture struct {
	store      *kv.MemoryStore
	accounts   repository.AccountRepository
	stores     repository.StoreRepository
	products   repository.ProductRepository
	carts      repository.CartRepository
	publisher  *recordingPublisher
	session    *SessionService
	cart       *CartService
	checkout   *CheckoutService
	storefront *StorefrontService
}

type stubRemote struct {
	products []entity.Product
	err      error
}

func (r stubRemote) Products(context.Context) ([]entity.Product, error) {
	return r.products, r.err
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop().Sugar()
	store := kv.NewMemoryStore()
	f := &fixture{
		store:     store,
		accounts:  document.NewAccountRepository(store),
		stores:    document.NewStoreRepository(store),
		products:  document.NewProductRepository(store),
		carts:     document.NewCartRepository(store),
		publisher: &recordingPublisher{},
	}
	f.session = NewSessionService(f.accounts, document.NewSessionRepository(store), f.carts, f.publisher, log, bcrypt.MinCost)
	f.cart = NewCartService(f.carts, f.products, log)
	f.checkout = NewCheckoutService(f.session, f.carts, document.NewSettlementRepository(store), f.publisher, nil, log)
	f.storefront = NewStorefrontService(f.products, f.stores, []entity.Category{{ID: "doces", Name: "Doces"}},
		f.session, stubRemote{}, f.publisher, log)

	require.NoError(t, f.stores.Seed(ctx, []entity.Store{
		entity.NewStore("1", "", entity.StoreDraft{Name: "PH Foods", Location: "D02"}, ""),
		entity.NewStore("2", "", entity.StoreDraft{Name: "Doces da Ana", Location: "C15"}, ""),
	}))
	require.NoError(t, f.products.Seed(ctx, []entity.Product{
		{ID: "p1", StoreID: "1", StoreName: "PH Foods", Name: "Brownie", Description: "chocolate", Price: money("6.00"), Category: "doces"},
		{ID: "p2", StoreID: "1", StoreName: "PH Foods", Name: "Torta de Frango", Description: "massa caseira", Price: money("8.50"), Category: "salgados"},
		{ID: "p3", StoreID: "2", StoreName: "Doces da Ana", Name: "Alfajor", Description: "doce de leite", Price: money("5.00"), Category: "doces"},
	}))
	return f
}

// signUp registers an account and sets its balance.
func (f *fixture) signUp(t *testing.T, username, balance string) entity.Account {
	t.Helper()
	ctx := context.Background()
	acc, err := f.session.Register(ctx, entity.Registration{Name: username, Username: username, Password: "secret"})
	require.NoError(t, err)
	if balance != "" {
		updated, err := f.session.UpdateBalance(ctx, money(balance))
		require.NoError(t, err)
		acc = *updated
	}
	return acc
}
