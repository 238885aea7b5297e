package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutState is a step of a single checkout attempt.
type CheckoutState string

const (
	CheckoutIdle             CheckoutState = "idle"
	CheckoutValidating       CheckoutState = "validating"
	CheckoutRejected         CheckoutState = "rejected"
	CheckoutDebiting         CheckoutState = "debiting"
	CheckoutRatingCollection CheckoutState = "rating_collection"
	CheckoutComplete         CheckoutState = "complete"
)

// Rating is the draft review of one purchased product. Zero stars means the
// product was not rated.
type Rating struct {
	Stars   int    `json:"rating"`
	Comment string `json:"comment"`
}

// Checkout drives one purchase from validation to the post-purchase rating
// flow. It snapshots the cart lines when created.
type Checkout struct {
	ID        string            `json:"id"`
	AccountID string            `json:"account_id"`
	Method    PaymentMethod     `json:"payment_method"`
	Lines     []CartLine        `json:"lines"`
	Total     decimal.Decimal   `json:"total"`
	State     CheckoutState     `json:"state"`
	Reason    string            `json:"reason,omitempty"`
	Index     int               `json:"index"`
	Ratings   map[string]Rating `json:"ratings"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewCheckout starts an idle checkout over the given cart.
func NewCheckout(id, accountID string, method PaymentMethod, cart Cart, now time.Time) *Checkout {
	lines := make([]CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	return &Checkout{
		ID:        id,
		AccountID: accountID,
		Method:    method,
		Lines:     lines,
		Total:     cart.Total(),
		State:     CheckoutIdle,
		Ratings:   make(map[string]Rating),
		CreatedAt: now,
	}
}

// Validate checks that the checkout can be paid. Balance payments require
// balance >= total; cash and PIX are accepted unconditionally. On success the
// checkout moves to Debiting, otherwise to Rejected.
func (c *Checkout) Validate(balance decimal.Decimal) error {
	if c.State != CheckoutIdle {
		return fmt.Errorf("cannot validate checkout in state %s", c.State)
	}
	if len(c.Lines) == 0 {
		return ErrEmptyCart
	}
	c.State = CheckoutValidating
	if !c.Method.Valid() {
		c.reject(ErrInvalidPayment)
		return ErrInvalidPayment
	}
	if c.Method == PaymentBalance && balance.LessThan(c.Total) {
		c.reject(ErrInsufficientFunds)
		return ErrInsufficientFunds
	}
	c.State = CheckoutDebiting
	return nil
}

func (c *Checkout) reject(reason error) {
	c.State = CheckoutRejected
	c.Reason = reason.Error()
}

// Debit is the amount taken from the account balance: the total for balance
// payments, zero otherwise.
func (c *Checkout) Debit() decimal.Decimal {
	if c.Method == PaymentBalance {
		return c.Total
	}
	return decimal.Zero
}

// Sales returns the per-store credit of this checkout.
func (c *Checkout) Sales() []StoreSale {
	return Cart{Lines: c.Lines}.SalesByStore()
}

// Settled records that the debit and store credit were committed and opens the
// rating flow on the first line.
func (c *Checkout) Settled() error {
	if c.State != CheckoutDebiting {
		return fmt.Errorf("cannot settle checkout in state %s", c.State)
	}
	c.State = CheckoutRatingCollection
	c.Index = 0
	for _, l := range c.Lines {
		c.Ratings[l.ProductID] = Rating{}
	}
	return nil
}

// Current returns the line being rated.
func (c *Checkout) Current() (CartLine, bool) {
	if c.State != CheckoutRatingCollection || c.Index < 0 || c.Index >= len(c.Lines) {
		return CartLine{}, false
	}
	return c.Lines[c.Index], true
}

// Rate stores the draft rating of a purchased product.
func (c *Checkout) Rate(productID string, stars int, comment string) error {
	if c.State != CheckoutRatingCollection {
		return ErrCheckoutNotActive
	}
	if stars < 1 || stars > 5 {
		return ErrInvalidRating
	}
	if _, ok := c.Ratings[productID]; !ok {
		return ErrProductNotFound
	}
	c.Ratings[productID] = Rating{Stars: stars, Comment: comment}
	return nil
}

// Next moves to the following line. Moving past the last line completes the
// checkout; it reports whether that happened.
func (c *Checkout) Next() (bool, error) {
	if c.State != CheckoutRatingCollection {
		return false, ErrCheckoutNotActive
	}
	if c.Index < len(c.Lines)-1 {
		c.Index++
		return false, nil
	}
	c.State = CheckoutComplete
	return true, nil
}

// Prev moves back one line; it stays on the first line.
func (c *Checkout) Prev() error {
	if c.State != CheckoutRatingCollection {
		return ErrCheckoutNotActive
	}
	if c.Index > 0 {
		c.Index--
	}
	return nil
}

// Skip abandons the remaining ratings and completes the checkout.
func (c *Checkout) Skip() error {
	if c.State != CheckoutRatingCollection {
		return ErrCheckoutNotActive
	}
	c.State = CheckoutComplete
	return nil
}

// Rated returns the lines that received a star rating, in cart order.
func (c *Checkout) Rated() []ProductRated {
	var out []ProductRated
	for _, l := range c.Lines {
		r := c.Ratings[l.ProductID]
		if r.Stars == 0 {
			continue
		}
		out = append(out, ProductRated{
			CheckoutID: c.ID,
			ProductID:  l.ProductID,
			StoreID:    l.StoreID,
			Rating:     r.Stars,
			Comment:    r.Comment,
		})
	}
	return out
}
