package service

import (
	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/pkg/apperror"
)

// CartService exposes the cart ledger operations for a session. Every
// mutation runs under the session mutex, so handlers never observe a
// half-applied change, and the ledger invariants (no duplicate lines, no
// zero-quantity lines) hold after every call.
type CartService struct {
	catalog *CatalogService
}

// NewCartService creates a new cart service
func NewCartService(catalog *CatalogService) *CartService {
	return &CartService{catalog: catalog}
}

// CartView is the cart plus its derived totals, recomputed on every query.
type CartView struct {
	Lines  []entity.CartLine `json:"items"`
	Totals entity.Totals     `json:"totals"`
}

// View returns the current lines and totals.
func (s *CartService) View(sess *Session) CartView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return CartView{
		Lines:  sess.cart.Lines(),
		Totals: sess.cart.Totals(),
	}
}

// AddItem puts quantity units of a catalog product in the cart. The
// product's identity and price are copied from the catalog at this moment;
// later catalog refreshes do not touch the line.
func (s *CartService) AddItem(sess *Session, productID int64, quantity int) (CartView, error) {
	if quantity < 1 {
		return s.View(sess), apperror.NewBadRequestError("Quantity must be a positive integer")
	}
	if !s.catalog.Loaded(sess) {
		return s.View(sess), apperror.ErrCatalogEmpty
	}
	product, ok := s.catalog.find(sess, productID)
	if !ok {
		return s.View(sess), apperror.NewNotFoundError("Product")
	}

	sess.mu.Lock()
	sess.cart.AddItem(product, quantity)
	view := CartView{Lines: sess.cart.Lines(), Totals: sess.cart.Totals()}
	sess.mu.Unlock()
	return view, nil
}

// AdjustQuantity adds delta to a line's quantity; dropping to zero or
// below removes the line. Unknown product IDs are a no-op.
func (s *CartService) AdjustQuantity(sess *Session, productID int64, delta int) CartView {
	sess.mu.Lock()
	sess.cart.AdjustQuantity(productID, delta)
	view := CartView{Lines: sess.cart.Lines(), Totals: sess.cart.Totals()}
	sess.mu.Unlock()
	return view
}

// RemoveItem drops a line unconditionally.
func (s *CartService) RemoveItem(sess *Session, productID int64) CartView {
	sess.mu.Lock()
	sess.cart.RemoveItem(productID)
	view := CartView{Lines: sess.cart.Lines(), Totals: sess.cart.Totals()}
	sess.mu.Unlock()
	return view
}

// SetDiscount replaces the discount. The amount is not clamped against the
// subtotal; whether a resulting negative total is floored is a cart
// configuration decision.
func (s *CartService) SetDiscount(sess *Session, amount float64) (CartView, error) {
	if amount < 0 {
		return s.View(sess), apperror.NewBadRequestError("Discount cannot be negative")
	}
	sess.mu.Lock()
	sess.cart.SetDiscount(entity.Cents(amount))
	view := CartView{Lines: sess.cart.Lines(), Totals: sess.cart.Totals()}
	sess.mu.Unlock()
	return view, nil
}
