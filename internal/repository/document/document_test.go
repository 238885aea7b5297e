package document

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
)

func TestAccountRepository_CreateRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(kv.NewMemoryStore())

	require.NoError(t, repo.Create(ctx, entity.Account{ID: "a1", Username: "ana"}))
	err := repo.Create(ctx, entity.Account{ID: "a2", Username: "ana"})
	assert.ErrorIs(t, err, entity.ErrDuplicateUsername)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a1", all[0].ID)
}

func TestAccountRepository_UpdateChecksUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(kv.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, entity.Account{ID: "a1", Username: "ana"}))
	require.NoError(t, repo.Create(ctx, entity.Account{ID: "a2", Username: "bia"}))

	_, err := repo.Update(ctx, "a2", func(a *entity.Account) error {
		a.Username = "ana"
		return nil
	})
	assert.ErrorIs(t, err, entity.ErrDuplicateUsername)

	got, err := repo.FindByUsername(ctx, "bia")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.ID)

	updated, err := repo.Update(ctx, "a2", func(a *entity.Account) error {
		a.Name = "Bia"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Bia", updated.Name)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrAccountNotFound)
}

func TestAccountRepository_UpdateErrorLeavesRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(kv.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, entity.Account{ID: "a1", Username: "ana", Balance: decimal.NewFromInt(5)}))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "a1", func(a *entity.Account) error {
		a.Balance = decimal.Zero
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(5)))
}

func TestSeedOnlyWhenAbsent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewStoreRepository(store)

	require.NoError(t, repo.Seed(ctx, []entity.Store{{ID: "1", Name: "PH Foods"}}))
	require.NoError(t, repo.Seed(ctx, []entity.Store{{ID: "9", Name: "Other"}}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "PH Foods", all[0].Name)

	// An emptied collection is still considered written.
	products := NewProductRepository(store)
	require.NoError(t, products.Seed(ctx, nil))
	require.NoError(t, products.Seed(ctx, []entity.Product{{ID: "p1"}}))
	items, err := products.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(kv.NewMemoryStore())

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, entity.Session{AccountID: "a1"}))
	s, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a1", s.AccountID)

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(kv.NewMemoryStore())

	cart, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	line := entity.CartLine{ProductID: "p1", UnitPrice: decimal.RequireFromString("6.00")}
	for i := 0; i < 3; i++ {
		_, err = repo.Update(ctx, func(c *entity.Cart) error {
			c.Add(line)
			return nil
		})
		require.NoError(t, err)
	}

	cart, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	require.NoError(t, repo.Clear(ctx))
	cart, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestSettlementRepository_Settle(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	accounts := NewAccountRepository(store)
	stores := NewStoreRepository(store)
	require.NoError(t, accounts.Create(ctx, entity.Account{ID: "a1", Username: "ana", Balance: decimal.RequireFromString("100.00")}))
	require.NoError(t, stores.Seed(ctx, []entity.Store{{ID: "1", Revenue: decimal.Zero}}))

	sales := []entity.StoreSale{
		{StoreID: "1", Quantity: 3, Revenue: decimal.RequireFromString("20.50")},
		{StoreID: "ghost", Quantity: 1, Revenue: decimal.RequireFromString("1.00")},
	}
	acc, err := NewSettlementRepository(store).Settle(ctx, "a1", decimal.RequireFromString("20.50"), sales)
	require.NoError(t, err)
	assert.Equal(t, "79.50", entity.FormatCurrency(acc.Balance))

	s, err := stores.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Sales)
	assert.Equal(t, "20.50", entity.FormatCurrency(s.Revenue))

	all, err := stores.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSettlementRepository_UnknownAccount(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_, err := NewSettlementRepository(store).Settle(ctx, "nobody", decimal.NewFromInt(1), nil)
	assert.ErrorIs(t, err, entity.ErrAccountNotFound)

	doc, err := store.Get(ctx, KeyStores)
	require.NoError(t, err)
	assert.False(t, doc.Exists())
}

// staleStore bumps the stores document between the settlement read and commit.
type staleStore struct {
	*kv.MemoryStore
	bumped bool
}

func (s *staleStore) Commit(ctx context.Context, writes ...kv.Write) error {
	if !s.bumped && len(writes) == 2 {
		s.bumped = true
		doc, err := s.MemoryStore.Get(ctx, KeyStores)
		if err != nil {
			return err
		}
		if err := s.MemoryStore.Commit(ctx, kv.Write{Key: KeyStores, Value: doc.Value, ExpectedVersion: doc.Version}); err != nil {
			return err
		}
	}
	return s.MemoryStore.Commit(ctx, writes...)
}

func TestSettlementRepository_ConflictWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := &staleStore{MemoryStore: kv.NewMemoryStore()}
	accounts := NewAccountRepository(store)
	require.NoError(t, accounts.Create(ctx, entity.Account{ID: "a1", Username: "ana", Balance: decimal.NewFromInt(10)}))
	require.NoError(t, NewStoreRepository(store).Seed(ctx, []entity.Store{{ID: "1"}}))

	_, err := NewSettlementRepository(store).Settle(ctx, "a1", decimal.NewFromInt(4),
		[]entity.StoreSale{{StoreID: "1", Quantity: 1, Revenue: decimal.NewFromInt(4)}})
	assert.ErrorIs(t, err, kv.ErrVersionConflict)

	acc, err := accounts.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(10)))
}
