package request

// AddItemRequest adds a catalog product to the cart. Quantity defaults to
// 1 when omitted.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// AdjustQuantityRequest changes a line's quantity by a signed delta.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SetDiscountRequest replaces the cart discount (decimal money value).
type SetDiscountRequest struct {
	Amount float64 `json:"amount"`
}
