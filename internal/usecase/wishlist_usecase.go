package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// /wishlist の業務ロジック。
type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

func NewWishlistUsecase(
	wishlistRepo repo.WishlistRepository,
	productRepo repo.ProductRepository,
) *WishlistUsecase {
	return &WishlistUsecase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

type ToggleWishlistOutput struct {
	Liked   bool   `json:"liked"`
	Message string `json:"message"`
}

// 入っていれば外し、入っていなければ入れる。
func (u *WishlistUsecase) Toggle(ctx context.Context, userID int64, productID int64) (ToggleWishlistOutput, error) {
	if userID <= 0 {
		return ToggleWishlistOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if productID <= 0 {
		return ToggleWishlistOutput{}, NewHTTPError(http.StatusBadRequest, "Product ID required")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return ToggleWishlistOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return ToggleWishlistOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	list, err := u.wishlistRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return ToggleWishlistOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	liked, err := u.wishlistRepo.Contains(ctx, list.ID, productID)
	if err != nil {
		return ToggleWishlistOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if liked {
		if err := u.wishlistRepo.RemoveProduct(ctx, list.ID, productID); err != nil {
			return ToggleWishlistOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else {
		if err := u.wishlistRepo.AddProduct(ctx, list.ID, productID); err != nil {
			return ToggleWishlistOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return ToggleWishlistOutput{
		Liked:   !liked,
		Message: "Wishlist updated",
	}, nil
}

// 商品IDの一覧。未ログインは空で返す（toggle側の401とは非対称だが仕様どおり）。
func (u *WishlistUsecase) ListProductIDs(ctx context.Context, userID *int64) ([]int64, error) {
	if userID == nil {
		return []int64{}, nil
	}

	list, err := u.wishlistRepo.GetOrCreateByUserID(ctx, *userID)
	if err != nil {
		return []int64{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids, err := u.wishlistRepo.ListProductIDs(ctx, list.ID)
	if err != nil {
		return []int64{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ids, nil
}
