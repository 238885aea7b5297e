package document

import (
	"context"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

type storeRepository struct {
	stores collection[entity.Store]
}

// NewStoreRepository creates a StoreRepository over the stores document.
func NewStoreRepository(store kv.Store) repository.StoreRepository {
	return &storeRepository{stores: stores(store)}
}

func stores(store kv.Store) collection[entity.Store] {
	return collection[entity.Store]{
		store: store,
		key:   KeyStores,
		id:    func(s entity.Store) string { return s.ID },
	}
}

func (r *storeRepository) List(ctx context.Context) ([]entity.Store, error) {
	items, _, err := r.stores.load(ctx)
	return items, err
}

func (r *storeRepository) FindByID(ctx context.Context, id string) (entity.Store, error) {
	return r.stores.find(ctx, id, entity.ErrStoreNotFound)
}

func (r *storeRepository) Create(ctx context.Context, store entity.Store) error {
	return r.stores.insert(ctx, store, nil)
}

func (r *storeRepository) Update(ctx context.Context, id string, fn func(*entity.Store) error) (entity.Store, error) {
	return r.stores.update(ctx, id, fn, nil, entity.ErrStoreNotFound)
}

func (r *storeRepository) Seed(ctx context.Context, stores []entity.Store) error {
	return r.stores.seed(ctx, stores)
}
