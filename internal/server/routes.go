package server

import (
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Auth     *handler.AuthHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Order    *handler.OrderHandler
}

// tokensは認証ミドルウェアがトークン照合に使う
func RegisterRoutes(e *echo.Echo, h Handlers, tokens repository.AuthTokenRepository) {
	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, tokens)
	h.Wishlist.RegisterRoutes(e, tokens)
	h.Order.RegisterRoutes(e, tokens)
}
