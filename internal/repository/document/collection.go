// Package document implements the repositories on top of kv documents. Each
// collection is a single JSON array document; record level operations read the
// array, change one record and write the array back against the version read.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rafa37412/CeFoods/internal/kv"
)

// Document keys.
const (
	KeyUsers    = "users"
	KeySession  = "current-session"
	KeyCart     = "cart"
	KeyStores   = "stores"
	KeyProducts = "products"
)

type collection[T any] struct {
	store kv.Store
	key   string
	id    func(T) string
}

func (c collection[T]) load(ctx context.Context) ([]T, int64, error) {
	items, version, err := kv.Load[[]T](ctx, c.store, c.key)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, version, nil
}

func (c collection[T]) write(items []T, version int64) (kv.Write, error) {
	if items == nil {
		items = []T{}
	}
	return kv.Encode(c.key, items, version)
}

func (c collection[T]) commit(ctx context.Context, items []T, version int64) error {
	w, err := c.write(items, version)
	if err != nil {
		return err
	}
	if err := c.store.Commit(ctx, w); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

func (c collection[T]) find(ctx context.Context, id string, notFound error) (T, error) {
	var zero T
	items, _, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if c.id(item) == id {
			return item, nil
		}
	}
	return zero, notFound
}

// insert appends item after check accepts the current records.
func (c collection[T]) insert(ctx context.Context, item T, check func([]T) error) error {
	items, version, err := c.load(ctx)
	if err != nil {
		return err
	}
	if check != nil {
		if err := check(items); err != nil {
			return err
		}
	}
	return c.commit(ctx, append(items, item), version)
}

// update applies fn to the record with the given id, then runs check over the
// full set before writing.
func (c collection[T]) update(ctx context.Context, id string, fn func(*T) error, check func([]T, int) error, notFound error) (T, error) {
	var zero T
	items, version, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	idx := -1
	for i := range items {
		if c.id(items[i]) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, notFound
	}

	updated := items[idx]
	if err := fn(&updated); err != nil {
		return zero, err
	}
	items[idx] = updated
	if check != nil {
		if err := check(items, idx); err != nil {
			return zero, err
		}
	}
	if err := c.commit(ctx, items, version); err != nil {
		return zero, err
	}
	return updated, nil
}

// seed writes items only if the collection document was never written.
func (c collection[T]) seed(ctx context.Context, items []T) error {
	doc, err := c.store.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if doc.Exists() {
		return nil
	}
	err = c.commit(ctx, items, 0)
	if errors.Is(err, kv.ErrVersionConflict) {
		// Seeded by someone else in the meantime.
		return nil
	}
	return err
}
