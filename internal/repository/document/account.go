package document

import (
	"context"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

type accountRepository struct {
	users collection[entity.Account]
}

// NewAccountRepository creates an AccountRepository over the users document.
func NewAccountRepository(store kv.Store) repository.AccountRepository {
	return &accountRepository{users: accounts(store)}
}

func accounts(store kv.Store) collection[entity.Account] {
	return collection[entity.Account]{
		store: store,
		key:   KeyUsers,
		id:    func(a entity.Account) string { return a.ID },
	}
}

func (r *accountRepository) List(ctx context.Context) ([]entity.Account, error) {
	items, _, err := r.users.load(ctx)
	return items, err
}

func (r *accountRepository) FindByID(ctx context.Context, id string) (entity.Account, error) {
	return r.users.find(ctx, id, entity.ErrAccountNotFound)
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (entity.Account, error) {
	items, _, err := r.users.load(ctx)
	if err != nil {
		return entity.Account{}, err
	}
	for _, a := range items {
		if a.Username == username {
			return a, nil
		}
	}
	return entity.Account{}, entity.ErrAccountNotFound
}

func (r *accountRepository) Create(ctx context.Context, account entity.Account) error {
	return r.users.insert(ctx, account, func(existing []entity.Account) error {
		for _, a := range existing {
			if a.Username == account.Username {
				return entity.ErrDuplicateUsername
			}
		}
		return nil
	})
}

func (r *accountRepository) Update(ctx context.Context, id string, fn func(*entity.Account) error) (entity.Account, error) {
	return r.users.update(ctx, id, fn, uniqueUsernames, entity.ErrAccountNotFound)
}

func uniqueUsernames(items []entity.Account, changed int) error {
	for i, a := range items {
		if i != changed && a.Username == items[changed].Username {
			return entity.ErrDuplicateUsername
		}
	}
	return nil
}

func (r *accountRepository) Seed(ctx context.Context, accounts []entity.Account) error {
	return r.users.seed(ctx, accounts)
}
