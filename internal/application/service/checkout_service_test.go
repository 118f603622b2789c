package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
	"github.com/kirekcahs/codebrew-pos/pkg/apperror"
)

// fakeGateway is a scripted UpstreamGateway for service tests.
type fakeGateway struct {
	mu          sync.Mutex
	loginResult *repository.LoginResult
	loginErr    error
	products    []entity.Product
	fetchErr    error
	orderResult *repository.OrderResult
	submitErr   error
	submissions []*repository.OrderSubmission
	// blockSubmit, when non-nil, holds SubmitOrder until closed.
	blockSubmit chan struct{}
}

func (g *fakeGateway) Login(ctx context.Context, username, password string) (*repository.LoginResult, error) {
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.loginResult, nil
}

func (g *fakeGateway) FetchProducts(ctx context.Context, token string) ([]entity.Product, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.products, nil
}

func (g *fakeGateway) SubmitOrder(ctx context.Context, token string, order *repository.OrderSubmission) (*repository.OrderResult, error) {
	if g.blockSubmit != nil {
		<-g.blockSubmit
	}
	g.mu.Lock()
	g.submissions = append(g.submissions, order)
	g.mu.Unlock()
	if g.submitErr != nil {
		return nil, g.submitErr
	}
	return g.orderResult, nil
}

func (g *fakeGateway) submissionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.submissions)
}

func newCheckoutSession(t *testing.T) *Session {
	t.Helper()
	sess := NewSession(entity.SessionContext{
		Token:      "upstream-token",
		UserID:     7,
		Username:   "maria",
		Role:       enum.RoleCashier,
		BranchID:   3,
		BranchName: "Makati",
	}, 0.12, false)
	return sess
}

func fillCart(sess *Session) {
	sess.mu.Lock()
	sess.cart.AddItem(entity.Product{ID: 1, Name: "Caffe Latte", UnitPrice: 12000}, 2)
	sess.cart.AddItem(entity.Product{ID: 2, Name: "Espresso", UnitPrice: 8000}, 1)
	sess.mu.Unlock()
}

func TestCheckoutBegin(t *testing.T) {
	svc := NewCheckoutService(&fakeGateway{}, nil)

	t.Run("empty cart is rejected without a state change", func(t *testing.T) {
		sess := newCheckoutSession(t)

		err := svc.Begin(sess)
		assert.ErrorIs(t, err, apperror.ErrEmptyCart)
		assert.Equal(t, enum.CheckoutStateIdle, svc.State(sess))
	})

	t.Run("non-empty cart moves to awaiting payment", func(t *testing.T) {
		sess := newCheckoutSession(t)
		fillCart(sess)

		require.NoError(t, svc.Begin(sess))
		assert.Equal(t, enum.CheckoutStateAwaitingPayment, svc.State(sess))
	})
}

func TestCheckoutSubmit(t *testing.T) {
	orderID := int64(4891)

	t.Run("success clears the cart and appends a receipt", func(t *testing.T) {
		gw := &fakeGateway{orderResult: &repository.OrderResult{OrderID: &orderID}}
		svc := NewCheckoutService(gw, nil)
		sess := newCheckoutSession(t)
		fillCart(sess)

		receipt, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
		require.NoError(t, err)

		assert.Equal(t, "4891", receipt.ID)
		assert.True(t, receipt.ServerIssued)
		assert.Equal(t, int64(32000), receipt.Subtotal)
		assert.Equal(t, int64(3840), receipt.Tax)
		assert.Equal(t, int64(35840), receipt.Total)
		assert.Equal(t, "maria", receipt.Cashier)
		assert.Equal(t, int64(3), receipt.BranchID)

		sess.mu.Lock()
		assert.True(t, sess.cart.IsEmpty())
		assert.Len(t, sess.receipts, 1)
		sess.mu.Unlock()
		assert.Equal(t, enum.CheckoutStateSucceeded, svc.State(sess))
	})

	t.Run("submission carries the cart snapshot", func(t *testing.T) {
		gw := &fakeGateway{orderResult: &repository.OrderResult{OrderID: &orderID}}
		svc := NewCheckoutService(gw, nil)
		sess := newCheckoutSession(t)
		fillCart(sess)

		_, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCard)
		require.NoError(t, err)

		require.Len(t, gw.submissions, 1)
		order := gw.submissions[0]
		require.Len(t, order.Items, 2)
		assert.Equal(t, 120.0, order.Items[0].UnitPrice)
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.Equal(t, 358.40, order.TotalAmount)
		assert.Equal(t, 38.40, order.TaxAmount)
		assert.Equal(t, enum.PaymentMethodCard, order.PaymentMethod)
		assert.Equal(t, int64(3), order.BranchID)
	})

	t.Run("missing server order ID falls back to a local receipt number", func(t *testing.T) {
		gw := &fakeGateway{orderResult: &repository.OrderResult{}}
		svc := NewCheckoutService(gw, nil)
		sess := newCheckoutSession(t)
		fillCart(sess)

		receipt, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
		require.NoError(t, err)

		assert.NotEmpty(t, receipt.ID)
		assert.False(t, receipt.ServerIssued)
	})

	t.Run("empty cart is rejected before any network call", func(t *testing.T) {
		gw := &fakeGateway{}
		svc := NewCheckoutService(gw, nil)
		sess := newCheckoutSession(t)

		_, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
		assert.ErrorIs(t, err, apperror.ErrEmptyCart)
		assert.Equal(t, 0, gw.submissionCount())
	})

	t.Run("missing branch fails fast", func(t *testing.T) {
		gw := &fakeGateway{}
		svc := NewCheckoutService(gw, nil)
		sess := NewSession(entity.SessionContext{
			Token:    "t",
			Username: "maria",
			Role:     enum.RoleCashier,
		}, 0.12, false)
		fillCart(sess)

		_, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
		assert.ErrorIs(t, err, apperror.ErrNoBranchSelected)
		assert.Equal(t, 0, gw.submissionCount())
	})

	t.Run("invalid payment method is rejected", func(t *testing.T) {
		svc := NewCheckoutService(&fakeGateway{}, nil)
		sess := newCheckoutSession(t)
		fillCart(sess)

		_, err := svc.Submit(context.Background(), sess, enum.PaymentMethod(99))
		appErr := apperror.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("upstream rejection leaves the cart untouched", func(t *testing.T) {
		gw := &fakeGateway{submitErr: apperror.NewInsufficientStockError("Insufficient stock for Caffe Latte")}
		svc := NewCheckoutService(gw, nil)
		sess := newCheckoutSession(t)
		fillCart(sess)
		sess.mu.Lock()
		sess.cart.SetDiscount(500)
		sess.mu.Unlock()

		_, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
		require.Error(t, err)

		sess.mu.Lock()
		assert.Equal(t, 2, sess.cart.Len())
		assert.Equal(t, int64(500), sess.cart.Discount())
		assert.Empty(t, sess.receipts)
		sess.mu.Unlock()
		assert.Equal(t, enum.CheckoutStateFailed, svc.State(sess))
	})

	t.Run("retry after failure works with the same cart", func(t *testing.T) {
		gw := &fakeGateway{submitErr: apperror.ErrUpstreamUnavailable}
		svc := NewCheckoutService(gw, nil)
		sess := newCheckoutSession(t)
		fillCart(sess)

		_, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
		require.Error(t, err)

		gw.submitErr = nil
		gw.orderResult = &repository.OrderResult{OrderID: &orderID}

		receipt, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
		require.NoError(t, err)
		assert.Equal(t, "4891", receipt.ID)
		assert.Equal(t, 2, gw.submissionCount())
	})

	t.Run("second submission is rejected while one is in flight", func(t *testing.T) {
		gw := &fakeGateway{
			orderResult: &repository.OrderResult{OrderID: &orderID},
			blockSubmit: make(chan struct{}),
		}
		svc := NewCheckoutService(gw, nil)
		sess := newCheckoutSession(t)
		fillCart(sess)

		done := make(chan error, 1)
		go func() {
			_, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
			done <- err
		}()

		// Wait for the first submission to take the gate.
		require.Eventually(t, func() bool {
			return sess.processing.Load()
		}, time.Second, time.Millisecond)

		_, err := svc.Submit(context.Background(), sess, enum.PaymentMethodCash)
		assert.ErrorIs(t, err, apperror.ErrCheckoutInFlight)

		close(gw.blockSubmit)
		require.NoError(t, <-done)
		assert.Equal(t, 1, gw.submissionCount())
		assert.False(t, sess.processing.Load())
	})
}
