package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a registered user with credentials, a wallet balance and an
// optional seller store.
type Account struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"password_hash"`
	Balance      decimal.Decimal `json:"balance"`
	HasStore     bool            `json:"has_store"`
	StoreID      string          `json:"store_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Registration is the profile supplied when signing up.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfilePatch carries the account fields a user may edit. Nil fields are left
// untouched.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Session points at the account bound to the running client.
type Session struct {
	AccountID string    `json:"account_id"`
	StartedAt time.Time `json:"started_at"`
}

// Product represents a product sold by a campus store.
type Product struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	StoreName   string          `json:"store_name"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
}

// ProductDraft is what a seller fills in when listing a new product.
type ProductDraft struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
}

// Store is a seller storefront together with its sales counters.
type Store struct {
	ID       string          `json:"id"`
	OwnerID  string          `json:"owner_id,omitempty"`
	Name     string          `json:"name"`
	ImageURL string          `json:"image_url"`
	Location string          `json:"location"`
	Rating   float64         `json:"rating"`
	Sales    int             `json:"sales"`
	Revenue  decimal.Decimal `json:"revenue"`
	Products int             `json:"products"`
}

// StoreDraft is what a seller fills in when opening a store.
type StoreDraft struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Images used when a seller does not provide one.
const (
	DefaultStoreImage   = "https://images.unsplash.com/photo-1488477181946-6428a0291777?auto=format&fit=crop&w=500&q=80"
	DefaultProductImage = "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?auto=format&fit=crop&w=500&q=80"
	DefaultCategory     = "doces"
)

// SearchResult holds the products and stores matching a query.
type SearchResult struct {
	Products []Product `json:"products"`
	Stores   []Store   `json:"stores"`
}

// Category groups products on the storefront.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// PaymentMethod selects how a checkout is paid.
type PaymentMethod string

const (
	PaymentBalance PaymentMethod = "balance"
	PaymentCash    PaymentMethod = "cash"
	PaymentPix     PaymentMethod = "pix"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentBalance, PaymentCash, PaymentPix:
		return true
	}
	return false
}

// FormatCurrency renders an amount with exactly two fractional digits.
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
