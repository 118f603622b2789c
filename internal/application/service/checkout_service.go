package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
	"github.com/kirekcahs/codebrew-pos/pkg/apperror"
	"github.com/kirekcahs/codebrew-pos/pkg/utils"
)

// CheckoutService orchestrates the payment flow: validate the cart, submit
// the order to the upstream API, and on success produce an immutable
// receipt and reset the ledger. On any failure the cart is left exactly as
// it was so the cashier can retry without re-entering items.
//
// State machine: Idle -> AwaitingPayment -> Submitting -> Succeeded|Failed.
// The processing gate is the only concurrency control: it rejects a second
// submission while one is in flight and is always released, even on
// transport failure, so Submitting can never stick.
type CheckoutService struct {
	gateway repository.UpstreamGateway
	journal repository.ReceiptJournalRepository // nil when journaling is disabled
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(gateway repository.UpstreamGateway, journal repository.ReceiptJournalRepository) *CheckoutService {
	return &CheckoutService{gateway: gateway, journal: journal}
}

// Begin moves the session to payment-method selection. An empty cart is
// rejected with no state change and no network call.
func (s *CheckoutService) Begin(sess *Session) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.cart.IsEmpty() {
		return apperror.ErrEmptyCart
	}
	sess.checkout = enum.CheckoutStateAwaitingPayment
	return nil
}

// State returns the session's checkout state.
func (s *CheckoutService) State(sess *Session) enum.CheckoutState {
	return sess.CheckoutState()
}

// Submit runs one checkout attempt. Validation (cart non-empty, branch
// present) happens from scratch on every invocation; there is no automatic
// retry.
func (s *CheckoutService) Submit(ctx context.Context, sess *Session, method enum.PaymentMethod) (*entity.Receipt, error) {
	if !method.Valid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	sess.mu.Lock()
	if sess.cart.IsEmpty() {
		sess.mu.Unlock()
		return nil, apperror.ErrEmptyCart
	}
	lines := sess.cart.Lines()
	totals := sess.cart.Totals()
	sctx := sess.context
	sess.mu.Unlock()

	if !sctx.HasBranch() {
		return nil, apperror.ErrNoBranchSelected
	}

	// Double-submission gate. Held for the whole exchange, released on
	// every path out.
	if !sess.processing.CompareAndSwap(false, true) {
		return nil, apperror.ErrCheckoutInFlight
	}
	defer sess.processing.Store(false)

	sess.setCheckoutState(enum.CheckoutStateSubmitting)

	items := make([]repository.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = repository.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: entity.Decimal(line.UnitPrice), // cart snapshot, not the catalog
		}
	}

	result, err := s.gateway.SubmitOrder(ctx, sctx.Token, &repository.OrderSubmission{
		Items:          items,
		TotalAmount:    entity.Decimal(totals.Total),
		PaymentMethod:  method,
		DiscountAmount: entity.Decimal(totals.Discount),
		TaxAmount:      entity.Decimal(totals.Tax),
		BranchID:       sctx.BranchID,
	})
	if err != nil {
		// Cart, discount and totals are untouched.
		sess.setCheckoutState(enum.CheckoutStateFailed)
		return nil, err
	}

	receipt := entity.Receipt{
		Lines:         lines,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: method,
		BranchID:      sctx.BranchID,
		Cashier:       sctx.Username,
		CreatedAt:     time.Now(),
	}
	if result.OrderID != nil {
		receipt.ID = strconv.FormatInt(*result.OrderID, 10)
		receipt.ServerIssued = true
	} else {
		receipt.ID = utils.GenerateReceiptNo()
	}

	sess.mu.Lock()
	sess.receipts = append(sess.receipts, receipt)
	sess.cart.Clear()
	sess.checkout = enum.CheckoutStateSucceeded
	sess.mu.Unlock()

	s.appendJournal(ctx, sctx, &receipt, result.OrderID)

	return &receipt, nil
}

// appendJournal writes the sale record. Best-effort: a journal failure is
// logged, never surfaced — the sale already succeeded upstream.
func (s *CheckoutService) appendJournal(ctx context.Context, sctx entity.SessionContext, receipt *entity.Receipt, serverOrderID *int64) {
	if s.journal == nil {
		return
	}
	record := entity.NewSaleRecord(sctx.SessionID, receipt, serverOrderID)
	if err := s.journal.Append(ctx, record); err != nil {
		log.Printf("Warning: failed to journal sale %s: %v", receipt.ID, err)
	}
}
