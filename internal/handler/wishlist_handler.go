package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

type ToggleWishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

// toggleは認証必須、一覧は未ログインでも空で返す（仕様どおりの非対称）。
func (h *WishlistHandler) RegisterRoutes(e *echo.Echo, tokens repository.AuthTokenRepository) {
	e.POST("/wishlist/toggle", h.toggle, middleware.RequireAuthToken(tokens))
	e.GET("/wishlist", h.list, middleware.OptionalAuthToken(tokens))
}

func (h *WishlistHandler) toggle(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
	}

	var req ToggleWishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Toggle(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) list(c echo.Context) error {
	out, err := h.uc.ListProductIDs(c.Request().Context(), optionalUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
