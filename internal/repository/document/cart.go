package document

import (
	"context"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

type cartRepository struct {
	store kv.Store
}

// NewCartRepository creates a CartRepository over the cart document.
func NewCartRepository(store kv.Store) repository.CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) Load(ctx context.Context) (entity.Cart, error) {
	lines, _, err := kv.Load[[]entity.CartLine](ctx, r.store, KeyCart)
	if err != nil {
		return entity.Cart{}, err
	}
	return entity.NewCart(lines), nil
}

func (r *cartRepository) Update(ctx context.Context, fn func(*entity.Cart) error) (entity.Cart, error) {
	var cart entity.Cart
	_, err := kv.Update(ctx, r.store, KeyCart, func(lines *[]entity.CartLine) error {
		cart = entity.NewCart(*lines)
		if err := fn(&cart); err != nil {
			return err
		}
		*lines = entity.NewCart(cart.Lines).Lines
		return nil
	})
	if err != nil {
		return entity.Cart{}, err
	}
	return cart, nil
}

func (r *cartRepository) Clear(ctx context.Context) error {
	return deleteKey(ctx, r.store, KeyCart)
}
