// Package catalog holds the seed catalog and the client for the catalog API.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

//go:embed seed.yaml
var seedYAML []byte

type seedStore struct {
	ID       string  `yaml:"id"`
	OwnerID  string  `yaml:"owner_id"`
	Name     string  `yaml:"name"`
	Location string  `yaml:"location"`
	Rating   float64 `yaml:"rating"`
	ImageURL string  `yaml:"image_url"`
}

type seedProduct struct {
	ID          string  `yaml:"id"`
	StoreID     string  `yaml:"store_id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       string  `yaml:"price"`
	Category    string  `yaml:"category"`
	Rating      float64 `yaml:"rating"`
	ReviewCount int     `yaml:"review_count"`
	ImageURL    string  `yaml:"image_url"`
}

// DemoAccount is the account created on first start. Password is plain text
// and hashed by the caller.
type DemoAccount struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Balance  string `yaml:"balance"`
	StoreID  string `yaml:"store_id"`
}

type seedFile struct {
	Categories  []entity.Category `yaml:"categories"`
	Stores      []seedStore       `yaml:"stores"`
	Products    []seedProduct     `yaml:"products"`
	DemoAccount DemoAccount       `yaml:"demo_account"`
}

// Seed is the initial storefront data.
type Seed struct {
	Categories  []entity.Category
	Stores      []entity.Store
	Products    []entity.Product
	DemoAccount DemoAccount
	DemoBalance decimal.Decimal
}

// DefaultSeed parses the embedded seed catalog.
func DefaultSeed() (Seed, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed decodes a seed catalog. Product store names and store product
// counters are derived from the store list.
func ParseSeed(data []byte) (Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Seed{}, fmt.Errorf("parsing seed catalog: %w", err)
	}

	s := Seed{Categories: f.Categories, DemoAccount: f.DemoAccount}
	index := make(map[string]int, len(f.Stores))
	for _, st := range f.Stores {
		store := entity.NewStore(st.ID, st.OwnerID, entity.StoreDraft{Name: st.Name, Location: st.Location}, st.ImageURL)
		store.Rating = st.Rating
		index[st.ID] = len(s.Stores)
		s.Stores = append(s.Stores, store)
	}

	for _, sp := range f.Products {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return Seed{}, fmt.Errorf("product %q: invalid price %q: %w", sp.ID, sp.Price, err)
		}
		i, ok := index[sp.StoreID]
		if !ok {
			return Seed{}, fmt.Errorf("product %q: unknown store %q", sp.ID, sp.StoreID)
		}
		s.Stores[i].ProductListed()
		s.Products = append(s.Products, entity.Product{
			ID:          sp.ID,
			StoreID:     sp.StoreID,
			StoreName:   s.Stores[i].Name,
			Name:        sp.Name,
			Description: sp.Description,
			Price:       price,
			ImageURL:    sp.ImageURL,
			Category:    sp.Category,
			Rating:      sp.Rating,
			ReviewCount: sp.ReviewCount,
		})
	}

	s.DemoBalance = decimal.Zero
	if f.DemoAccount.Balance != "" {
		balance, err := decimal.NewFromString(f.DemoAccount.Balance)
		if err != nil {
			return Seed{}, fmt.Errorf("demo account: invalid balance %q: %w", f.DemoAccount.Balance, err)
		}
		s.DemoBalance = balance
	}
	return s, nil
}
