package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
	"github.com/kirekcahs/codebrew-pos/pkg/apperror"
)

func sampleCatalog() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Caffe Latte", Category: "Coffee", UnitPrice: 12000},
		{ID: 2, Name: "Iced Latte", Category: "Coffee", UnitPrice: 13500},
		{ID: 3, Name: "Butter Croissant", Category: "Pastry", UnitPrice: 9500},
		{ID: 4, Name: "Matcha Latte", Category: "Tea", UnitPrice: 14000},
	}
}

func newCatalogSession(t *testing.T) (*CatalogService, *Session, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{products: sampleCatalog()}
	svc := NewCatalogService(gw)
	sess := NewSession(entity.SessionContext{
		Token:    "upstream-token",
		Username: "maria",
		Role:     enum.RoleCashier,
		BranchID: 3,
	}, 0.12, false)
	return svc, sess, gw
}

func TestCatalogLoad(t *testing.T) {
	t.Run("caches the fetched catalog in the session", func(t *testing.T) {
		svc, sess, _ := newCatalogSession(t)
		assert.False(t, svc.Loaded(sess))

		products, err := svc.Load(context.Background(), sess)
		require.NoError(t, err)
		assert.Len(t, products, 4)
		assert.True(t, svc.Loaded(sess))
	})

	t.Run("failed refresh keeps the previous catalog", func(t *testing.T) {
		svc, sess, gw := newCatalogSession(t)
		_, err := svc.Load(context.Background(), sess)
		require.NoError(t, err)

		gw.fetchErr = apperror.ErrUpstreamUnavailable
		_, err = svc.Load(context.Background(), sess)
		assert.ErrorIs(t, err, apperror.ErrUpstreamUnavailable)

		assert.True(t, svc.Loaded(sess))
		assert.Len(t, svc.Filter(sess, "", CategoryAll), 4)
	})
}

func TestCatalogFilter(t *testing.T) {
	svc, sess, _ := newCatalogSession(t)
	_, err := svc.Load(context.Background(), sess)
	require.NoError(t, err)

	t.Run("search is a case-insensitive name substring", func(t *testing.T) {
		got := svc.Filter(sess, "latte", CategoryAll)
		require.Len(t, got, 3)

		got = svc.Filter(sess, "LATTE", CategoryAll)
		assert.Len(t, got, 3)

		got = svc.Filter(sess, "nothing", CategoryAll)
		assert.Empty(t, got)
	})

	t.Run("category narrows before search", func(t *testing.T) {
		got := svc.Filter(sess, "latte", "coffee")
		require.Len(t, got, 2)

		got = svc.Filter(sess, "", "Pastry")
		require.Len(t, got, 1)
		assert.Equal(t, "Butter Croissant", got[0].Name)
	})

	t.Run("all sentinel and empty category disable the filter", func(t *testing.T) {
		assert.Len(t, svc.Filter(sess, "", CategoryAll), 4)
		assert.Len(t, svc.Filter(sess, "", ""), 4)
	})
}

func TestCatalogCategories(t *testing.T) {
	svc, sess, _ := newCatalogSession(t)
	_, err := svc.Load(context.Background(), sess)
	require.NoError(t, err)

	got := svc.Categories(sess)
	require.Len(t, got, 4)
	assert.Equal(t, CategoryCount{Name: CategoryAll, Count: 4}, got[0])
	assert.Equal(t, CategoryCount{Name: "coffee", Count: 2}, got[1])
	assert.Equal(t, CategoryCount{Name: "pastry", Count: 1}, got[2])
	assert.Equal(t, CategoryCount{Name: "tea", Count: 1}, got[3])
}
