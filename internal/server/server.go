package server

import (
	"context"
	"log/slog"
	"net/http"

	"bookly/internal/auth"
	"bookly/internal/handler"
	"bookly/internal/logging"
	"bookly/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const APIPrefix = "/api/v1"

// Depsはサーバーが必要とする部品
type Deps struct {
	Logger       *slog.Logger
	AllowedHosts []string
	CORSOrigins  []string

	Tokens middleware.TokenValidator
	Users  auth.UserFinder
	// DBの疎通確認（GET /）
	Health func(ctx context.Context) error

	Auth    *handler.AuthHandler
	Books   *handler.BookHandler
	Tags    *handler.TagHandler
	Reviews *handler.ReviewHandler
}

// Newはミドルウェアとルートを登録したechoを返す
func New(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: !allowsAnyOrigin(d.CORSOrigins),
	}))
	if len(d.AllowedHosts) > 0 {
		e.Use(middleware.TrustedHosts(d.AllowedHosts))
	}

	RegisterRoutes(e, d)
	return e
}

// "*"（または未指定）のときはcredentialsを許可しない
func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
