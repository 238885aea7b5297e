package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/messaging"
)

func TestBrowse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	all, err := f.storefront.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	doces, err := f.storefront.ProductsByCategory(ctx, "doces")
	require.NoError(t, err)
	assert.Len(t, doces, 2)

	none, err := f.storefront.ProductsByCategory(ctx, "bebidas")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	byStore, err := f.storefront.ProductsByStore(ctx, "2")
	require.NoError(t, err)
	require.Len(t, byStore, 1)
	assert.Equal(t, "Alfajor", byStore[0].Name)

	_, err = f.storefront.Product(ctx, "zzz")
	assert.ErrorIs(t, err, entity.ErrProductNotFound)
	_, err = f.storefront.Store(ctx, "zzz")
	assert.ErrorIs(t, err, entity.ErrStoreNotFound)

	assert.Len(t, f.storefront.Categories(), 1)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.storefront.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Empty(t, res.Stores)

	res, err = f.storefront.Search(ctx, "DOCE")
	require.NoError(t, err)
	assert.Len(t, res.Products, 2) // category doces, description "doce de leite"
	require.Len(t, res.Stores, 1)
	assert.Equal(t, "2", res.Stores[0].ID)

	res, err = f.storefront.Search(ctx, "d02")
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	require.Len(t, res.Stores, 1)
	assert.Equal(t, "PH Foods", res.Stores[0].Name)
}

func TestOpenStoreAndAddProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.storefront.OpenStore(ctx, entity.StoreDraft{Name: "X", Location: "A1"})
	assert.ErrorIs(t, err, entity.ErrNoSession)

	f.signUp(t, "ana", "")
	_, err = f.storefront.AddProduct(ctx, entity.ProductDraft{Name: "Pudim", Price: money("3")})
	assert.ErrorIs(t, err, entity.ErrNoStore)

	_, err = f.storefront.OpenStore(ctx, entity.StoreDraft{Name: " ", Location: "A1"})
	assert.ErrorIs(t, err, entity.ErrInvalidStore)

	store, err := f.storefront.OpenStore(ctx, entity.StoreDraft{Name: "Cantina", Location: "B12"})
	require.NoError(t, err)
	assert.Zero(t, store.Products)
	assert.Equal(t, entity.DefaultStoreImage, store.ImageURL)

	_, err = f.storefront.OpenStore(ctx, entity.StoreDraft{Name: "Again", Location: "B12"})
	assert.ErrorIs(t, err, entity.ErrStoreExists)

	acc, err := f.session.Current(ctx)
	require.NoError(t, err)
	assert.True(t, acc.HasStore)
	assert.Equal(t, store.ID, acc.StoreID)

	_, err = f.storefront.AddProduct(ctx, entity.ProductDraft{Name: "Pudim", Price: money("0")})
	assert.ErrorIs(t, err, entity.ErrInvalidPrice)
	_, err = f.storefront.AddProduct(ctx, entity.ProductDraft{Name: "", Price: money("3")})
	assert.ErrorIs(t, err, entity.ErrInvalidProduct)

	p, err := f.storefront.AddProduct(ctx, entity.ProductDraft{Name: "Pudim", Price: money("3.50")})
	require.NoError(t, err)
	assert.Equal(t, store.ID, p.StoreID)
	assert.Equal(t, "Cantina", p.StoreName)
	assert.Equal(t, entity.DefaultCategory, p.Category)

	got, err := f.storefront.Store(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Products)

	_, err = f.cart.AddProduct(ctx, p.ID)
	assert.NoError(t, err)

	assert.Equal(t, []string{
		messaging.TopicAccountRegistered,
		messaging.TopicStoreOpened,
		messaging.TopicProductListed,
	}, f.publisher.topics())
}

func TestRemoteProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "ana", "")
	f.fill(t, "p1")

	f.storefront.remote = stubRemote{err: fmt.Errorf("%w: connection refused", entity.ErrNetwork)}
	_, err := f.storefront.RemoteProducts(ctx)
	assert.ErrorIs(t, err, entity.ErrNetwork)

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)

	f.storefront.remote = stubRemote{products: []entity.Product{{ID: "r1"}}}
	products, err := f.storefront.RemoteProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

type memCatalog struct {
	upserted []entity.Product
	rated    map[string][]int
	err      error
}

func (m *memCatalog) FindAll(context.Context) ([]entity.Product, error) { return nil, m.err }

func (m *memCatalog) Seed(context.Context, []entity.Product) error { return nil }

func (m *memCatalog) Upsert(_ context.Context, p entity.Product) error {
	m.upserted = append(m.upserted, p)
	return nil
}

func (m *memCatalog) ApplyRating(_ context.Context, id string, stars int) error {
	if m.rated == nil {
		m.rated = make(map[string][]int)
	}
	m.rated[id] = append(m.rated[id], stars)
	return nil
}

func TestCatalogService(t *testing.T) {
	ctx := context.Background()
	repo := &memCatalog{}
	svc := NewCatalogService(repo, zap.NewNop().Sugar())

	products, err := svc.GetProducts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)

	require.NoError(t, svc.HandleProductListed(ctx, []byte(`{"product":{"id":"x1","name":"Pudim","price":"3.50"}}`)))
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "3.50", entity.FormatCurrency(repo.upserted[0].Price))

	assert.Error(t, svc.HandleProductListed(ctx, []byte(`{"product":{}}`)))
	assert.Error(t, svc.HandleProductRated(ctx, []byte(`nope`)))

	require.NoError(t, svc.HandleProductRated(ctx, []byte(`{"product_id":"x1","rating":4}`)))
	assert.Equal(t, []int{4}, repo.rated["x1"])

	repo.err = errors.New("db down")
	_, err = svc.GetProducts(ctx)
	assert.Error(t, err)
}
