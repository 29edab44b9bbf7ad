package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// /carts の業務ロジック。
// userIDがnilの呼び出しは共有の匿名カートに落ちる。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// 明細には商品側の名前・現在価格・画像を埋めて返す。
type CartItemResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ProductImage string          `json:"product_image"`
	Quantity     int64           `json:"quantity"`
}

// totalは保存せず、読み出しのたびに数量×現在価格で計算する。
type CartResponse struct {
	ID        int64              `json:"id"`
	Items     []CartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

const (
	CartActionIncrease = "increase"
	CartActionDecrease = "decrease"
)

// カート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID *int64) (CartResponse, error) {
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart.ID, cart.CreatedAt)
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID *int64, in AddCartInput) (string, CartResponse, error) {
	if in.ProductID <= 0 {
		return "", CartResponse{}, NewHTTPError(http.StatusBadRequest, "product_id is required")
	}
	if in.Quantity < 1 {
		return "", CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return "", CartResponse{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return "", CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return "", CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// (cart, product)のupsert
	if err := u.cartItemRepo.AddQuantity(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return "", CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out, err := u.buildCartResponse(ctx, cart.ID, cart.CreatedAt)
	if err != nil {
		return "", CartResponse{}, err
	}

	msg := fmt.Sprintf("Added %d unit(s) to cart", in.Quantity)
	return msg, out, nil
}

// 明細削除（無条件）。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID *int64, itemID int64) (CartResponse, error) {
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "item_id is required")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, itemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "Item not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart.ID, cart.CreatedAt)
}

// 数量変更。increaseは+1、decreaseは-1。
// decreaseで0以下になったら行ごと削除する（0では残さない）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID *int64, itemID int64, action string) (CartResponse, error) {
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "item_id is required")
	}
	if action != CartActionIncrease && action != CartActionDecrease {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "Invalid action")
	}

	item, err := u.cartItemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "Item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	switch action {
	case CartActionIncrease:
		if err := u.cartItemRepo.UpdateQuantity(ctx, itemID, item.Quantity+1); err != nil {
			if err == repo.ErrNotFound {
				return CartResponse{}, NewHTTPError(http.StatusNotFound, "Item not found")
			}
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	case CartActionDecrease:
		newQty := item.Quantity - 1
		if newQty <= 0 {
			if err := u.cartItemRepo.DeleteByID(ctx, itemID); err != nil && err != repo.ErrNotFound {
				return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			if err := u.cartItemRepo.UpdateQuantity(ctx, itemID, newQty); err != nil {
				if err == repo.ErrNotFound {
					return CartResponse{}, NewHTTPError(http.StatusNotFound, "Item not found")
				}
				return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart.ID, cart.CreatedAt)
}

// cartIDの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64, createdAt time.Time) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			// 商品が消えた明細は表示しない
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		respItems = append(respItems, CartItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  p.Name,
			ProductPrice: p.Price,
			ProductImage: p.Image,
			Quantity:     it.Quantity,
		})

		total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	return CartResponse{
		ID:        cartID,
		Items:     respItems,
		Total:     total,
		CreatedAt: createdAt,
	}, nil
}
