package repository

import (
	"app/internal/domain/model"
	"context"
)

type WishlistRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Wishlist, error)
	Contains(ctx context.Context, wishlistID int64, productID int64) (bool, error)
	AddProduct(ctx context.Context, wishlistID int64, productID int64) error
	RemoveProduct(ctx context.Context, wishlistID int64, productID int64) error
	ListProductIDs(ctx context.Context, wishlistID int64) ([]int64, error)
}
