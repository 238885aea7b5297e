package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

// AccountRepository handles persistence for Accounts.
type AccountRepository interface {
	List(ctx context.Context) ([]entity.Account, error)
	FindByID(ctx context.Context, id string) (entity.Account, error)
	FindByUsername(ctx context.Context, username string) (entity.Account, error)
	// Create fails with entity.ErrDuplicateUsername when the username is taken.
	Create(ctx context.Context, account entity.Account) error
	Update(ctx context.Context, id string, fn func(*entity.Account) error) (entity.Account, error)
	// Seed stores the initial accounts if the account set was never written.
	Seed(ctx context.Context, accounts []entity.Account) error
}

// SessionRepository persists the pointer to the active account.
type SessionRepository interface {
	Load(ctx context.Context) (entity.Session, bool, error)
	Save(ctx context.Context, session entity.Session) error
	Clear(ctx context.Context) error
}

// CartRepository persists the line items of the active session.
type CartRepository interface {
	Load(ctx context.Context) (entity.Cart, error)
	Update(ctx context.Context, fn func(*entity.Cart) error) (entity.Cart, error)
	Clear(ctx context.Context) error
}

// StoreRepository handles persistence for Stores.
type StoreRepository interface {
	List(ctx context.Context) ([]entity.Store, error)
	FindByID(ctx context.Context, id string) (entity.Store, error)
	Create(ctx context.Context, store entity.Store) error
	Update(ctx context.Context, id string, fn func(*entity.Store) error) (entity.Store, error)
	Seed(ctx context.Context, stores []entity.Store) error
}

// ProductRepository handles persistence for the locally stored catalog.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (entity.Product, error)
	Create(ctx context.Context, product entity.Product) error
	Seed(ctx context.Context, products []entity.Product) error
}

// SettlementRepository commits the money movement of a checkout.
type SettlementRepository interface {
	// Settle debits the account and credits every store sale in one atomic
	// write. Sales for unknown stores are skipped.
	Settle(ctx context.Context, accountID string, debit decimal.Decimal, sales []entity.StoreSale) (entity.Account, error)
}

// CatalogRepository backs the catalog API products table.
type CatalogRepository interface {
	FindAll(ctx context.Context) ([]entity.Product, error)
	Seed(ctx context.Context, products []entity.Product) error
	// Upsert inserts the product or replaces the row with the same id.
	Upsert(ctx context.Context, product entity.Product) error
	// ApplyRating folds one review into the product's running average.
	ApplyRating(ctx context.Context, productID string, stars int) error
}
