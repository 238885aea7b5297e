package document

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

type settlementRepository struct {
	store  kv.Store
	users  collection[entity.Account]
	stores collection[entity.Store]
}

// NewSettlementRepository creates a SettlementRepository that writes the users
// and stores documents in a single commit.
func NewSettlementRepository(store kv.Store) repository.SettlementRepository {
	return &settlementRepository{store: store, users: accounts(store), stores: stores(store)}
}

func (r *settlementRepository) Settle(ctx context.Context, accountID string, debit decimal.Decimal, sales []entity.StoreSale) (entity.Account, error) {
	users, usersVersion, err := r.users.load(ctx)
	if err != nil {
		return entity.Account{}, err
	}
	idx := -1
	for i := range users {
		if users[i].ID == accountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.Account{}, entity.ErrAccountNotFound
	}
	users[idx].Balance = users[idx].Balance.Sub(debit)

	storeList, storesVersion, err := r.stores.load(ctx)
	if err != nil {
		return entity.Account{}, err
	}
	for _, sale := range sales {
		for i := range storeList {
			if storeList[i].ID == sale.StoreID {
				storeList[i].ApplySale(sale)
				break
			}
		}
	}

	usersWrite, err := r.users.write(users, usersVersion)
	if err != nil {
		return entity.Account{}, err
	}
	storesWrite, err := r.stores.write(storeList, storesVersion)
	if err != nil {
		return entity.Account{}, err
	}
	if err := r.store.Commit(ctx, usersWrite, storesWrite); err != nil {
		return entity.Account{}, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return users[idx], nil
}
