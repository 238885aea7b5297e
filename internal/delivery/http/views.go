package http

import (
	"time"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

// Money leaves the API as strings with two fractional digits.

type accountView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Balance   string    `json:"balance"`
	HasStore  bool      `json:"has_store"`
	StoreID   string    `json:"store_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newAccountView(a entity.Account) accountView {
	return accountView{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Username:  a.Username,
		Balance:   entity.FormatCurrency(a.Balance),
		HasStore:  a.HasStore,
		StoreID:   a.StoreID,
		CreatedAt: a.CreatedAt,
	}
}

type sessionView struct {
	Authenticated bool         `json:"authenticated"`
	Account       *accountView `json:"account,omitempty"`
}

func newSessionView(a *entity.Account) sessionView {
	if a == nil {
		return sessionView{}
	}
	v := newAccountView(*a)
	return sessionView{Authenticated: true, Account: &v}
}

type productView struct {
	ID          string  `json:"id"`
	StoreID     string  `json:"store_id"`
	StoreName   string  `json:"store_name"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

func newProductView(p entity.Product) productView {
	return productView{
		ID:          p.ID,
		StoreID:     p.StoreID,
		StoreName:   p.StoreName,
		Name:        p.Name,
		Description: p.Description,
		Price:       entity.FormatCurrency(p.Price),
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
	}
}

func newProductViews(products []entity.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, newProductView(p))
	}
	return out
}

type storeView struct {
	ID       string  `json:"id"`
	OwnerID  string  `json:"owner_id,omitempty"`
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
	Sales    int     `json:"sales"`
	Revenue  string  `json:"revenue"`
	Products int     `json:"products"`
}

func newStoreView(s entity.Store) storeView {
	return storeView{
		ID:       s.ID,
		OwnerID:  s.OwnerID,
		Name:     s.Name,
		ImageURL: s.ImageURL,
		Location: s.Location,
		Rating:   s.Rating,
		Sales:    s.Sales,
		Revenue:  entity.FormatCurrency(s.Revenue),
		Products: s.Products,
	}
}

func newStoreViews(stores []entity.Store) []storeView {
	out := make([]storeView, 0, len(stores))
	for _, s := range stores {
		out = append(out, newStoreView(s))
	}
	return out
}

type lineView struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	UnitPrice   string `json:"unit_price"`
	ImageRef    string `json:"image_ref"`
	Description string `json:"description"`
	StoreID     string `json:"store_id"`
	StoreName   string `json:"store_name"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

func newLineViews(lines []entity.CartLine) []lineView {
	out := make([]lineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineView{
			ProductID:   l.ProductID,
			Name:        l.Name,
			UnitPrice:   entity.FormatCurrency(l.UnitPrice),
			ImageRef:    l.ImageRef,
			Description: l.Description,
			StoreID:     l.StoreID,
			StoreName:   l.StoreName,
			Quantity:    l.Quantity,
			Subtotal:    entity.FormatCurrency(l.Subtotal()),
		})
	}
	return out
}

type cartView struct {
	Lines []lineView `json:"lines"`
	Count int        `json:"count"`
	Total string     `json:"total"`
}

func newCartView(c entity.Cart) cartView {
	return cartView{Lines: newLineViews(c.Lines), Count: c.Count(), Total: entity.FormatCurrency(c.Total())}
}

type checkoutView struct {
	ID            string                   `json:"id"`
	State         entity.CheckoutState     `json:"state"`
	PaymentMethod entity.PaymentMethod     `json:"payment_method"`
	Total         string                   `json:"total"`
	Reason        string                   `json:"reason,omitempty"`
	Lines         []lineView               `json:"lines"`
	Index         int                      `json:"index"`
	Current       *lineView                `json:"current,omitempty"`
	Ratings       map[string]entity.Rating `json:"ratings"`
}

func newCheckoutView(c entity.Checkout) checkoutView {
	v := checkoutView{
		ID:            c.ID,
		State:         c.State,
		PaymentMethod: c.Method,
		Total:         entity.FormatCurrency(c.Total),
		Reason:        c.Reason,
		Lines:         newLineViews(c.Lines),
		Index:         c.Index,
		Ratings:       c.Ratings,
	}
	if line, ok := c.Current(); ok {
		cur := newLineViews([]entity.CartLine{line})[0]
		v.Current = &cur
	}
	if v.Ratings == nil {
		v.Ratings = map[string]entity.Rating{}
	}
	return v
}

type searchView struct {
	Products []productView `json:"products"`
	Stores   []storeView   `json:"stores"`
}
