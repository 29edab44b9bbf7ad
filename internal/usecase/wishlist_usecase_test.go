package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWishlistFixture() (*WishlistUsecase, *fakeWishlistRepo) {
	wishlistRepo := &fakeWishlistRepo{}
	productRepo := &fakeProductRepo{products: map[int64]model.Product{
		1: {ID: 1, Name: "Apple", Price: decimal.RequireFromString("10.000")},
	}}
	return NewWishlistUsecase(wishlistRepo, productRepo), wishlistRepo
}

func TestWishlistUsecase_ToggleAddsThenRemoves(t *testing.T) {
	uc, _ := newWishlistFixture()

	out, err := uc.Toggle(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, out.Liked)
	assert.Equal(t, "Wishlist updated", out.Message)

	out, err = uc.Toggle(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, out.Liked)

	userID := int64(7)
	ids, err := uc.ListProductIDs(context.Background(), &userID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestWishlistUsecase_ToggleUnknownProduct(t *testing.T) {
	uc, _ := newWishlistFixture()

	_, err := uc.Toggle(context.Background(), 7, 99)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Product not found", he.Message)
}

func TestWishlistUsecase_ToggleRequiresAuth(t *testing.T) {
	uc, _ := newWishlistFixture()

	_, err := uc.Toggle(context.Background(), 0, 1)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func TestWishlistUsecase_ListProductIDs(t *testing.T) {
	uc, _ := newWishlistFixture()

	// 未ログインは常に空
	ids, err := uc.ListProductIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, ids)

	_, err = uc.Toggle(context.Background(), 7, 1)
	require.NoError(t, err)

	userID := int64(7)
	ids, err = uc.ListProductIDs(context.Background(), &userID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
}
