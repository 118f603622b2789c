package entity

import "encoding/json"

// Product is a sellable item from the upstream catalog. The catalog is
// fetched in bulk when a POS session activates and is read-only until the
// next refresh; a refresh replaces the whole list rather than merging.
type Product struct {
	ID          int64
	Name        string
	SKU         string
	Category    string
	UnitPrice   int64 // Stored in cents
	ImageURL    string
	Description string
}

// UnitPriceDecimal returns the unit price as a decimal (for display)
func (p *Product) UnitPriceDecimal() float64 {
	return Decimal(p.UnitPrice)
}

// productJSON is a helper struct for JSON marshaling with decimal prices
type productJSON struct {
	ID          int64   `json:"product_id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	UnitPrice   float64 `json:"unit_cost"` // Decimal value for JSON
	ImageURL    string  `json:"image_url,omitempty"`
	Description string  `json:"description,omitempty"`
}

// MarshalJSON converts Product to JSON with a decimal price
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		UnitPrice:   p.UnitPriceDecimal(),
		ImageURL:    p.ImageURL,
		Description: p.Description,
	})
}
