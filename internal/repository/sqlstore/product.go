package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

type productRow struct {
	ID          string          `db:"id"`
	StoreID     string          `db:"store_id"`
	StoreName   string          `db:"store_name"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	ImageURL    string          `db:"image_url"`
	Category    string          `db:"category"`
	Rating      float64         `db:"rating"`
	ReviewCount int             `db:"review_count"`
}

func toRow(p entity.Product) productRow {
	return productRow{
		ID:          p.ID,
		StoreID:     p.StoreID,
		StoreName:   p.StoreName,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
	}
}

func (r productRow) entity() entity.Product {
	return entity.Product{
		ID:          r.ID,
		StoreID:     r.StoreID,
		StoreName:   r.StoreName,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
	}
}

const productColumns = "id, store_id, store_name, name, description, price, image_url, category, rating, review_count"

const insertProduct = `INSERT INTO products (` + productColumns + `)
	VALUES (:id, :store_id, :store_name, :name, :description, :price, :image_url, :category, :rating, :review_count)`

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a CatalogRepository over the products table.
func NewProductRepository(db *sqlx.DB) repository.CatalogRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+productColumns+" FROM products ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.entity())
	}
	return products, nil
}

func (r *productRepository) Seed(ctx context.Context, products []entity.Product) error {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM products"); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil // already seeded
	}

	for _, p := range products {
		if _, err := r.db.NamedExecContext(ctx, insertProduct, toRow(p)); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}
	return nil
}

func (r *productRepository) Upsert(ctx context.Context, product entity.Product) error {
	if _, err := r.db.NamedExecContext(ctx, upsertProduct(r.db.DriverName()), toRow(product)); err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", product.ID, err)
	}
	return nil
}

func upsertProduct(driver string) string {
	if driver == "mysql" {
		return insertProduct + ` ON DUPLICATE KEY UPDATE
			store_id = VALUES(store_id), store_name = VALUES(store_name), name = VALUES(name),
			description = VALUES(description), price = VALUES(price), image_url = VALUES(image_url),
			category = VALUES(category)`
	}
	return insertProduct + ` ON CONFLICT (id) DO UPDATE SET
		store_id = excluded.store_id, store_name = excluded.store_name, name = excluded.name,
		description = excluded.description, price = excluded.price, image_url = excluded.image_url,
		category = excluded.category`
}

func (r *productRepository) ApplyRating(ctx context.Context, productID string, stars int) error {
	if stars < 1 || stars > 5 {
		return entity.ErrInvalidRating
	}
	query := r.db.Rebind(`UPDATE products
		SET rating = (rating * review_count + ?) / (review_count + 1), review_count = review_count + 1
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, float64(stars), productID)
	if err != nil {
		return fmt.Errorf("failed to rate product %s: %w", productID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrProductNotFound
	}
	return nil
}
