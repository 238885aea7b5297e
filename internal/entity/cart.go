package entity

import "github.com/shopspring/decimal"

// CartLine is one product the session intends to purchase.
type CartLine struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageRef    string          `json:"image_ref"`
	Description string          `json:"description"`
	StoreID     string          `json:"store_id"`
	StoreName   string          `json:"store_name"`
	Quantity    int             `json:"quantity"`
}

// Subtotal returns unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineFromProduct builds a cart line for p with quantity 1.
func LineFromProduct(p Product) CartLine {
	return CartLine{
		ProductID:   p.ID,
		Name:        p.Name,
		UnitPrice:   p.Price,
		ImageRef:    p.ImageURL,
		Description: p.Description,
		StoreID:     p.StoreID,
		StoreName:   p.StoreName,
		Quantity:    1,
	}
}

// Cart holds the line items of the current session, at most one per product,
// in insertion order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// NewCart creates a cart from persisted lines, dropping any line whose quantity
// is not positive.
func NewCart(lines []CartLine) Cart {
	c := Cart{Lines: make([]CartLine, 0, len(lines))}
	for _, l := range lines {
		if l.Quantity > 0 {
			c.Lines = append(c.Lines, l)
		}
	}
	return c
}

func (c *Cart) index(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add increments the line for item.ProductID or appends it with quantity 1.
func (c *Cart) Add(item CartLine) {
	if i := c.index(item.ProductID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	item.Quantity = 1
	c.Lines = append(c.Lines, item)
}

// Remove deletes the line for productID. It reports whether a line was removed.
func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// SetQuantity sets an absolute quantity. A quantity of zero or less removes the
// line. Absent lines are left alone.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines[i].Quantity = quantity
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// Line returns the line for productID.
func (c Cart) Line(productID string) (CartLine, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count returns the total number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Total returns the sum of every line subtotal.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// SalesByStore groups the lines by store, in order of first appearance.
func (c Cart) SalesByStore() []StoreSale {
	var sales []StoreSale
	pos := make(map[string]int)
	for _, l := range c.Lines {
		i, ok := pos[l.StoreID]
		if !ok {
			i = len(sales)
			pos[l.StoreID] = i
			sales = append(sales, StoreSale{StoreID: l.StoreID, Revenue: decimal.Zero})
		}
		sales[i].Quantity += l.Quantity
		sales[i].Revenue = sales[i].Revenue.Add(l.Subtotal())
	}
	return sales
}
