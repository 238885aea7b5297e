package entity

import "github.com/shopspring/decimal"

// StoreSale is the share of a settled cart that belongs to a single store.
type StoreSale struct {
	StoreID  string          `json:"store_id"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// NewStore opens a store for owner with zeroed counters.
func NewStore(id, ownerID string, draft StoreDraft, imageURL string) Store {
	return Store{
		ID:       id,
		OwnerID:  ownerID,
		Name:     draft.Name,
		ImageURL: imageURL,
		Location: draft.Location,
		Revenue:  decimal.Zero,
	}
}

// ApplySale credits the store counters with a settled sale.
func (s *Store) ApplySale(sale StoreSale) {
	s.Sales += sale.Quantity
	s.Revenue = s.Revenue.Add(sale.Revenue)
}

// ProductListed bumps the product counter.
func (s *Store) ProductListed() {
	s.Products++
}
