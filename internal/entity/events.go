package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event represents a domain event.
type Event interface {
	EventType() string
}

// --- Events ---

// AccountRegistered is emitted when a new account signs up.
type AccountRegistered struct {
	AccountID    string    `json:"account_id"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (e AccountRegistered) EventType() string { return "AccountRegistered" }

// StoreOpened is emitted when a seller opens a store.
type StoreOpened struct {
	StoreID  string    `json:"store_id"`
	OwnerID  string    `json:"owner_id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	OpenedAt time.Time `json:"opened_at"`
}

func (e StoreOpened) EventType() string { return "StoreOpened" }

// ProductListed is emitted when a seller adds a product to a store.
type ProductListed struct {
	Product  Product   `json:"product"`
	ListedAt time.Time `json:"listed_at"`
}

func (e ProductListed) EventType() string { return "ProductListed" }

// OrderSettled is emitted once the debit and store credit of a checkout have
// been committed.
type OrderSettled struct {
	CheckoutID    string          `json:"checkout_id"`
	AccountID     string          `json:"account_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Items         []CartLine      `json:"items"`
	Sales         []StoreSale     `json:"sales"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	SettledAt     time.Time       `json:"settled_at"`
}

func (e OrderSettled) EventType() string { return "OrderSettled" }

// ProductRated is emitted for every product rated at the end of a checkout.
type ProductRated struct {
	CheckoutID string `json:"checkout_id"`
	ProductID  string `json:"product_id"`
	StoreID    string `json:"store_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (e ProductRated) EventType() string { return "ProductRated" }
