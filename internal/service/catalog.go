package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

// CatalogService backs the catalog API and keeps its table in step with the
// storefront events.
type CatalogService struct {
	repo repository.CatalogRepository
	log  *zap.SugaredLogger
}

func NewCatalogService(repo repository.CatalogRepository, log *zap.SugaredLogger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// GetProducts returns all products.
func (s *CatalogService) GetProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// HandleProductListed upserts a product listed in a store.
func (s *CatalogService) HandleProductListed(ctx context.Context, payload []byte) error {
	var event entity.ProductListed
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to decode ProductListed: %w", err)
	}
	if event.Product.ID == "" {
		return fmt.Errorf("ProductListed without product id")
	}
	s.log.Infow("Projection: Upserting product", "product_id", event.Product.ID)
	return s.repo.Upsert(ctx, event.Product)
}

// HandleProductRated folds a rating into the product average.
func (s *CatalogService) HandleProductRated(ctx context.Context, payload []byte) error {
	var event entity.ProductRated
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to decode ProductRated: %w", err)
	}
	s.log.Infow("Projection: Applying rating", "product_id", event.ProductID, "rating", event.Rating)
	return s.repo.ApplyRating(ctx, event.ProductID, event.Rating)
}
