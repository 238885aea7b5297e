package document

import (
	"context"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

type productRepository struct {
	products collection[entity.Product]
}

// NewProductRepository creates a ProductRepository over the products document.
func NewProductRepository(store kv.Store) repository.ProductRepository {
	return &productRepository{products: collection[entity.Product]{
		store: store,
		key:   KeyProducts,
		id:    func(p entity.Product) string { return p.ID },
	}}
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	items, _, err := r.products.load(ctx)
	return items, err
}

func (r *productRepository) FindByID(ctx context.Context, id string) (entity.Product, error) {
	return r.products.find(ctx, id, entity.ErrProductNotFound)
}

func (r *productRepository) Create(ctx context.Context, product entity.Product) error {
	return r.products.insert(ctx, product, nil)
}

func (r *productRepository) Seed(ctx context.Context, products []entity.Product) error {
	return r.products.seed(ctx, products)
}
