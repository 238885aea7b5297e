package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/messaging"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

// RemoteCatalog reads the product list of the catalog API.
type RemoteCatalog interface {
	Products(ctx context.Context) ([]entity.Product, error)
}

// StorefrontService serves the catalog and the seller flow.
type StorefrontService struct {
	products   repository.ProductRepository
	stores     repository.StoreRepository
	categories []entity.Category
	sessions   *SessionService
	remote     RemoteCatalog
	publisher  messaging.Publisher
	log        *zap.SugaredLogger
	now        func() time.Time
}

func NewStorefrontService(
	products repository.ProductRepository,
	stores repository.StoreRepository,
	categories []entity.Category,
	sessions *SessionService,
	remote RemoteCatalog,
	publisher messaging.Publisher,
	log *zap.SugaredLogger,
) *StorefrontService {
	return &StorefrontService{
		products:   products,
		stores:     stores,
		categories: categories,
		sessions:   sessions,
		remote:     remote,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

// Products returns every product in the local catalog.
func (s *StorefrontService) Products(ctx context.Context) ([]entity.Product, error) {
	return s.products.FindAll(ctx)
}

// Product returns one product or entity.ErrProductNotFound.
func (s *StorefrontService) Product(ctx context.Context, id string) (entity.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Categories returns the static category list.
func (s *StorefrontService) Categories() []entity.Category {
	return append([]entity.Category(nil), s.categories...)
}

// Stores returns every store.
func (s *StorefrontService) Stores(ctx context.Context) ([]entity.Store, error) {
	return s.stores.List(ctx)
}

// Store returns one store or entity.ErrStoreNotFound.
func (s *StorefrontService) Store(ctx context.Context, id string) (entity.Store, error) {
	return s.stores.FindByID(ctx, id)
}

// ProductsByCategory returns the products of a category.
func (s *StorefrontService) ProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return s.filter(ctx, func(p entity.Product) bool { return p.Category == category })
}

// ProductsByStore returns the products sold by a store.
func (s *StorefrontService) ProductsByStore(ctx context.Context, storeID string) ([]entity.Product, error) {
	return s.filter(ctx, func(p entity.Product) bool { return p.StoreID == storeID })
}

func (s *StorefrontService) filter(ctx context.Context, keep func(entity.Product) bool) ([]entity.Product, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []entity.Product{}
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search matches query, case-insensitively, against product name, description
// and category, and against store name and location. A blank query matches
// nothing.
func (s *StorefrontService) Search(ctx context.Context, query string) (entity.SearchResult, error) {
	result := entity.SearchResult{Products: []entity.Product{}, Stores: []entity.Store{}}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return result, nil
	}

	products, err := s.filter(ctx, func(p entity.Product) bool {
		return contains(q, p.Name, p.Description, p.Category)
	})
	if err != nil {
		return result, err
	}
	result.Products = products

	stores, err := s.stores.List(ctx)
	if err != nil {
		return result, err
	}
	for _, st := range stores {
		if contains(q, st.Name, st.Location) {
			result.Stores = append(result.Stores, st)
		}
	}
	return result, nil
}

func contains(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (s *StorefrontService) requireAccount(ctx context.Context) (*entity.Account, error) {
	account, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, entity.ErrNoSession
	}
	return account, nil
}

// OpenStore creates a store owned by the bound account.
func (s *StorefrontService) OpenStore(ctx context.Context, draft entity.StoreDraft) (entity.Store, error) {
	account, err := s.requireAccount(ctx)
	if err != nil {
		return entity.Store{}, err
	}
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Location = strings.TrimSpace(draft.Location)
	if draft.Name == "" || draft.Location == "" {
		return entity.Store{}, entity.ErrInvalidStore
	}
	if account.HasStore {
		return entity.Store{}, entity.ErrStoreExists
	}

	store := entity.NewStore(uuid.NewString(), account.ID, draft, entity.DefaultStoreImage)
	s.log.Infow("Service: Opening store", "store_id", store.ID, "owner_id", account.ID, "name", store.Name)

	if err := s.stores.Create(ctx, store); err != nil {
		return entity.Store{}, fmt.Errorf("failed to create store: %w", err)
	}
	if _, err := s.sessions.CreateStore(ctx, store.ID); err != nil {
		return entity.Store{}, err
	}

	messaging.Emit(ctx, s.publisher, s.log, store.ID, entity.StoreOpened{
		StoreID:  store.ID,
		OwnerID:  account.ID,
		Name:     store.Name,
		Location: store.Location,
		OpenedAt: s.now().UTC(),
	})
	return store, nil
}

// AddProduct lists a product in the bound account's store.
func (s *StorefrontService) AddProduct(ctx context.Context, draft entity.ProductDraft) (entity.Product, error) {
	account, err := s.requireAccount(ctx)
	if err != nil {
		return entity.Product{}, err
	}
	if !account.HasStore || account.StoreID == "" {
		return entity.Product{}, entity.ErrNoStore
	}
	if strings.TrimSpace(draft.Name) == "" {
		return entity.Product{}, entity.ErrInvalidProduct
	}
	if !draft.Price.IsPositive() {
		return entity.Product{}, entity.ErrInvalidPrice
	}
	store, err := s.stores.FindByID(ctx, account.StoreID)
	if err != nil {
		return entity.Product{}, err
	}

	product := entity.Product{
		ID:          uuid.NewString(),
		StoreID:     store.ID,
		StoreName:   store.Name,
		Name:        strings.TrimSpace(draft.Name),
		Description: draft.Description,
		Price:       draft.Price,
		ImageURL:    draft.ImageURL,
		Category:    draft.Category,
	}
	if product.ImageURL == "" {
		product.ImageURL = entity.DefaultProductImage
	}
	if product.Category == "" {
		product.Category = entity.DefaultCategory
	}
	s.log.Infow("Service: Listing product", "product_id", product.ID, "store_id", store.ID)

	if err := s.products.Create(ctx, product); err != nil {
		return entity.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	if _, err := s.stores.Update(ctx, store.ID, func(st *entity.Store) error {
		st.ProductListed()
		return nil
	}); err != nil {
		return entity.Product{}, fmt.Errorf("failed to update store: %w", err)
	}

	messaging.Emit(ctx, s.publisher, s.log, product.ID, entity.ProductListed{
		Product:  product,
		ListedAt: s.now().UTC(),
	})
	return product, nil
}

// RemoteProducts reads the catalog API. Failures wrap entity.ErrNetwork and
// leave local state alone.
func (s *StorefrontService) RemoteProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.remote.Products(ctx)
	if err != nil {
		s.log.Warnw("Catalog API unavailable", "err", err)
		return nil, err
	}
	return products, nil
}
