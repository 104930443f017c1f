package middleware

import (
	"context"
	"errors"

	"bookly/internal/auth"

	"github.com/labstack/echo/v4"
)

const (
	CtxClaimsKey = "token_claims" // *auth.Claims
	CtxUserKey   = "current_user" // *model.User
)

// TokenValidatorはauth.Guardが満たす
type TokenValidator interface {
	Validate(ctx context.Context, authorization string, kind auth.TokenKind) (*auth.Claims, error)
}

// bearer tokenを検証してclaimsをcontextに入れる。
// kindでaccess / refreshのどちらを要求するかを決める。
func RequireToken(v TokenValidator, kind auth.TokenKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get(echo.HeaderAuthorization)

			claims, err := v.Validate(c.Request().Context(), authz, kind)
			if err != nil {
				return authError(c, err)
			}

			//contextへ保存
			c.Set(CtxClaimsKey, claims)
			return next(c)
		}
	}
}

// RequireTokenが入れたclaimsを取り出す
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(CtxClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// 認証系のエラーは auth.HTTPStatus / auth.Message で返す
func authError(c echo.Context, err error) error {
	status := auth.HTTPStatus(err)
	//クライアントが切断しただけならログに出さない
	if status >= 500 && !errors.Is(err, context.Canceled) {
		c.Logger().Error(err)
	}
	return c.JSON(status, errorJSON(auth.Message(err)))
}
