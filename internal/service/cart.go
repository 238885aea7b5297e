package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

// CartService manages the line items of the running session.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	log      *zap.SugaredLogger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, log *zap.SugaredLogger) *CartService {
	return &CartService{carts: carts, products: products, log: log}
}

// Cart returns the current cart.
func (s *CartService) Cart(ctx context.Context) (entity.Cart, error) {
	cart, err := s.carts.Load(ctx)
	if err != nil {
		return entity.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) update(ctx context.Context, fn func(*entity.Cart)) (entity.Cart, error) {
	cart, err := s.carts.Update(ctx, func(c *entity.Cart) error {
		fn(c)
		return nil
	})
	if err != nil {
		return entity.Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// AddItem increments the line for item or appends it with quantity 1.
func (s *CartService) AddItem(ctx context.Context, item entity.CartLine) (entity.Cart, error) {
	s.log.Infow("Service: Adding to cart", "product_id", item.ProductID)
	return s.update(ctx, func(c *entity.Cart) { c.Add(item) })
}

// AddProduct resolves productID in the catalog and adds it to the cart.
func (s *CartService) AddProduct(ctx context.Context, productID string) (entity.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return entity.Cart{}, err
	}
	return s.AddItem(ctx, entity.LineFromProduct(product))
}

// RemoveItem deletes the line for productID if present.
func (s *CartService) RemoveItem(ctx context.Context, productID string) (entity.Cart, error) {
	s.log.Infow("Service: Removing from cart", "product_id", productID)
	return s.update(ctx, func(c *entity.Cart) { c.Remove(productID) })
}

// SetQuantity sets an absolute quantity; zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) (entity.Cart, error) {
	return s.update(ctx, func(c *entity.Cart) { c.SetQuantity(productID, quantity) })
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.carts.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Total returns the cart total.
func (s *CartService) Total(ctx context.Context) (decimal.Decimal, error) {
	cart, err := s.Cart(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.Total(), nil
}
