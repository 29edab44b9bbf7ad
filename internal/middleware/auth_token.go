package middleware

import (
	"net/http"
	"strings"

	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

const CtxUserIDKey = "user_id" // int64

type errorResponse struct {
	Error string `json:"error"`
}

// Authorizationヘッダから "Token <key>" を取り出す。
// 形式が違えば空を返す。
func extractTokenKey(c echo.Context) string {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return ""
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// 認証必須のルート用。ヘッダ無しは401、未知のキーも401。
func RequireAuthToken(tokens repository.AuthTokenRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Authentication required"})
			}

			key := extractTokenKey(c)
			if key == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid token"})
			}

			token, err := tokens.FindByKey(c.Request().Context(), key)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid token"})
			}

			c.Set(CtxUserIDKey, token.UserID)
			return next(c)
		}
	}
}

// 任意認証のルート用。解決できなければ黙って未ログイン扱いにする
// （ヘッダ欠落・形式違い・未知のキーはどれもエラーにしない）。
func OptionalAuthToken(tokens repository.AuthTokenRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := extractTokenKey(c)
			if key == "" {
				return next(c)
			}

			token, err := tokens.FindByKey(c.Request().Context(), key)
			if err != nil {
				return next(c)
			}

			c.Set(CtxUserIDKey, token.UserID)
			return next(c)
		}
	}
}
