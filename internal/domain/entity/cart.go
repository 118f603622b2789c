package entity

import (
	"encoding/json"
	"math"
)

// CartLine is one product-and-quantity entry in the cart. Product identity
// and unit price are copied at add time, so a catalog refetch cannot change
// a price mid-cart.
type CartLine struct {
	ProductID int64
	Name      string
	SKU       string
	UnitPrice int64 // Stored in cents
	Quantity  int
}

// LineTotal returns unit price x quantity in cents.
func (l *CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

type cartLineJSON struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

func (l CartLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartLineJSON{
		ProductID: l.ProductID,
		Name:      l.Name,
		SKU:       l.SKU,
		UnitPrice: Decimal(l.UnitPrice),
		Quantity:  l.Quantity,
		LineTotal: Decimal(l.LineTotal()),
	})
}

// Totals holds the derived pricing of a cart, in cents.
type Totals struct {
	Subtotal int64
	Tax      int64
	Discount int64
	Total    int64
}

type totalsJSON struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(totalsJSON{
		Subtotal: Decimal(t.Subtotal),
		Tax:      Decimal(t.Tax),
		Discount: Decimal(t.Discount),
		Total:    Decimal(t.Total),
	})
}

// Cart is the ledger of the current, not-yet-submitted sale: an ordered
// list of lines (insertion order is display order), a user-entered discount
// and a fixed tax rate. Totals are recomputed on every call, never cached.
//
// Invariants: at most one line per product ID, and no line ever survives
// with quantity below 1.
type Cart struct {
	lines         []CartLine
	discount      int64 // cents
	taxRate       float64
	clampNegative bool
}

// NewCart creates an empty cart. When clampNegative is set, a discount
// exceeding subtotal+tax floors the total at zero instead of going
// negative (the product historically allowed negative totals).
func NewCart(taxRate float64, clampNegative bool) *Cart {
	return &Cart{taxRate: taxRate, clampNegative: clampNegative}
}

// AddItem puts quantity units of the product in the cart. If a line for
// the product already exists its quantity is incremented; otherwise a new
// line is appended. Non-positive quantities are ignored.
func (c *Cart) AddItem(p Product, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		UnitPrice: p.UnitPrice,
		Quantity:  quantity,
	})
}

// AdjustQuantity adds delta to the matching line's quantity. A result of
// zero or less removes the line entirely. Unknown product IDs are a no-op.
func (c *Cart) AdjustQuantity(productID int64, delta int) {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		c.lines[i].Quantity += delta
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// RemoveItem drops the matching line if present.
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetDiscount replaces the discount amount (cents). The amount is taken as
// given; it is not clamped against the subtotal. Negative values are
// rejected silently.
func (c *Cart) SetDiscount(cents int64) {
	if cents < 0 {
		return
	}
	c.discount = cents
}

// Discount returns the current discount in cents.
func (c *Cart) Discount() int64 {
	return c.discount
}

// TaxRate returns the cart's fixed tax rate.
func (c *Cart) TaxRate() float64 {
	return c.taxRate
}

// Lines returns a copy of the cart lines in display order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Totals recomputes subtotal, tax and total from the current lines.
func (c *Cart) Totals() Totals {
	var subtotal int64
	for i := range c.lines {
		subtotal += c.lines[i].LineTotal()
	}
	tax := int64(math.Round(float64(subtotal) * c.taxRate))
	total := subtotal + tax - c.discount
	if c.clampNegative && total < 0 {
		total = 0
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: c.discount,
		Total:    total,
	}
}

// Clear empties the cart and resets the discount to zero.
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = 0
}
