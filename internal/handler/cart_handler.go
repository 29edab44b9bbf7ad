package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 認証済みならそのuser_id、未ログインならnil（共有匿名カート行き）。
func optionalUserID(c echo.Context) *int64 {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return nil
	}

	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}
	return id, true
}

// /carts のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type RemoveCartRequest struct {
	ItemID int64 `json:"item_id"`
}

type UpdateCartRequest struct {
	ItemID int64  `json:"item_id"`
	Action string `json:"action"` // "increase" or "decrease"
}

type cartEnvelope struct {
	Message string               `json:"message"`
	Cart    usecase.CartResponse `json:"cart"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, tokens repository.AuthTokenRepository) {
	g := e.Group("/carts")
	g.Use(middleware.OptionalAuthToken(tokens))

	g.GET("", h.getCart)
	g.POST("/add", h.addItem)
	g.POST("/remove", h.removeItem)
	g.POST("/update", h.updateItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.GetCart(c.Request().Context(), optionalUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// quantity省略時は1
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	msg, cart, err := h.uc.AddToCart(c.Request().Context(), optionalUserID(c), usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartEnvelope{Message: msg, Cart: cart})
}

func (h *CartHandler) removeItem(c echo.Context) error {
	var req RemoveCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), optionalUserID(c), req.ItemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartEnvelope{Message: "Item removed from cart", Cart: cart})
}

func (h *CartHandler) updateItem(c echo.Context) error {
	var req UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cart, err := h.uc.UpdateQuantity(c.Request().Context(), optionalUserID(c), req.ItemID, req.Action)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartEnvelope{Message: "Cart updated", Cart: cart})
}
