package request

import "github.com/kirekcahs/codebrew-pos/internal/domain/enum"

// CheckoutRequest submits the current cart as a sale.
type CheckoutRequest struct {
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
}
