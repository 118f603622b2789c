package entity

import (
	"encoding/json"
	"time"

	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
)

// Receipt is an immutable snapshot of a completed sale, created exactly
// once per successful checkout and appended to the session log. It is NOT a
// database entity — the journal keeps its own record shape.
type Receipt struct {
	ID            string
	Lines         []CartLine
	Subtotal      int64 // cents
	Tax           int64
	Discount      int64
	Total         int64
	PaymentMethod enum.PaymentMethod
	BranchID      int64
	Cashier       string
	ServerIssued  bool // false when the receipt number is a local fallback
	CreatedAt     time.Time
}

type receiptJSON struct {
	ID            string             `json:"id"`
	Lines         []CartLine         `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	Tax           float64            `json:"tax"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	BranchID      int64              `json:"branch_id"`
	Cashier       string             `json:"cashier,omitempty"`
	ServerIssued  bool               `json:"server_issued"`
	CreatedAt     time.Time          `json:"created_at"`
}

// MarshalJSON converts the Receipt to JSON with decimal money values.
func (r Receipt) MarshalJSON() ([]byte, error) {
	return json.Marshal(receiptJSON{
		ID:            r.ID,
		Lines:         r.Lines,
		Subtotal:      Decimal(r.Subtotal),
		Tax:           Decimal(r.Tax),
		Discount:      Decimal(r.Discount),
		Total:         Decimal(r.Total),
		PaymentMethod: r.PaymentMethod,
		BranchID:      r.BranchID,
		Cashier:       r.Cashier,
		ServerIssued:  r.ServerIssued,
		CreatedAt:     r.CreatedAt,
	})
}
