package repository

import (
	"context"

	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
)

// LoginResult is what the upstream API returns for a successful login.
type LoginResult struct {
	Token      string
	UserID     int64
	Username   string
	RoleName   string
	BranchID   int64
	BranchName string
}

// OrderItem is one cart line as submitted to the upstream order endpoint.
// UnitPrice is the price captured in the cart at add time, already rounded
// to 2 decimals — never re-fetched from the catalog.
type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderSubmission is the POST /orders payload. Monetary amounts are
// decimals rounded to 2 fractional digits.
type OrderSubmission struct {
	Items          []OrderItem        `json:"items"`
	TotalAmount    float64            `json:"total_amount"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	DiscountAmount float64            `json:"discount_amount"`
	TaxAmount      float64            `json:"tax_amount"`
	BranchID       int64              `json:"branch_id"`
}

// OrderResult carries whatever identifier the upstream assigned to the
// order. OrderID is nil when the response contained none, in which case the
// caller substitutes a locally generated receipt number.
type OrderResult struct {
	OrderID *int64
}

// UpstreamGateway is the terminal's view of the external CodeBrew API. All
// business logic — credential checks, persistence, inventory decrement —
// lives behind it.
type UpstreamGateway interface {
	// Login exchanges credentials for a bearer token and user context.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// FetchProducts returns the full sellable catalog for the session.
	FetchProducts(ctx context.Context, token string) ([]entity.Product, error)
	// SubmitOrder creates the order upstream. Domain rejections
	// (insufficient stock, missing inventory record) come back as
	// classified apperrors.
	SubmitOrder(ctx context.Context, token string, order *OrderSubmission) (*OrderResult, error)
}
