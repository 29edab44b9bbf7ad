package server

import (
	appValidator "app/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// echoの組み立て。ルート登録はroutes.go側。
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// /carts/ と /carts を同一視する
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = appValidator.NewRequestValidator()

	return e
}
