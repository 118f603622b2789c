package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirekcahs/codebrew-pos/pkg/apperror"
)

func newCartFixture(t *testing.T) (*CartService, *Session) {
	t.Helper()
	catalogSvc, sess, _ := newCatalogSession(t)
	_, err := catalogSvc.Load(context.Background(), sess)
	require.NoError(t, err)
	return NewCartService(catalogSvc), sess
}

func TestCartServiceAddItem(t *testing.T) {
	t.Run("adds a catalog product and returns fresh totals", func(t *testing.T) {
		svc, sess := newCartFixture(t)

		view, err := svc.AddItem(sess, 1, 2)
		require.NoError(t, err)

		require.Len(t, view.Lines, 1)
		assert.Equal(t, "Caffe Latte", view.Lines[0].Name)
		assert.Equal(t, int64(24000), view.Totals.Subtotal)
		assert.Equal(t, int64(2880), view.Totals.Tax)
		assert.Equal(t, int64(26880), view.Totals.Total)
	})

	t.Run("unknown product returns not found", func(t *testing.T) {
		svc, sess := newCartFixture(t)

		_, err := svc.AddItem(sess, 999, 1)
		appErr := apperror.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("rejected before the catalog has loaded", func(t *testing.T) {
		catalogSvc, sess, _ := newCatalogSession(t)
		svc := NewCartService(catalogSvc)

		_, err := svc.AddItem(sess, 1, 1)
		assert.ErrorIs(t, err, apperror.ErrCatalogEmpty)
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		svc, sess := newCartFixture(t)

		_, err := svc.AddItem(sess, 1, 0)
		appErr := apperror.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}

func TestCartServiceAdjustAndRemove(t *testing.T) {
	svc, sess := newCartFixture(t)
	_, err := svc.AddItem(sess, 1, 2)
	require.NoError(t, err)

	view := svc.AdjustQuantity(sess, 1, -1)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 1, view.Lines[0].Quantity)

	view = svc.AdjustQuantity(sess, 1, -1)
	assert.Empty(t, view.Lines)

	_, err = svc.AddItem(sess, 2, 1)
	require.NoError(t, err)
	view = svc.RemoveItem(sess, 2)
	assert.Empty(t, view.Lines)
	assert.Equal(t, int64(0), view.Totals.Total)
}

func TestCartServiceSetDiscount(t *testing.T) {
	t.Run("stores the decimal amount as cents", func(t *testing.T) {
		svc, sess := newCartFixture(t)
		_, err := svc.AddItem(sess, 1, 1) // 120.00
		require.NoError(t, err)

		view, err := svc.SetDiscount(sess, 20.50)
		require.NoError(t, err)
		assert.Equal(t, int64(2050), view.Totals.Discount)
		assert.Equal(t, int64(12000+1440-2050), view.Totals.Total)
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		svc, sess := newCartFixture(t)

		_, err := svc.SetDiscount(sess, -5)
		appErr := apperror.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}
