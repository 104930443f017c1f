package middleware

import (
	"net/http"

	"bookly/internal/auth"
	"bookly/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// claimsのemailからDBの最新ユーザーを読む。RequireTokenの後に置く
func CurrentUser(users auth.UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON(auth.Message(auth.ErrTokenInvalid)))
			}

			user, err := auth.ResolveUser(c.Request().Context(), claims, users)
			if err != nil {
				return authError(c, err)
			}

			c.Set(CtxUserKey, user)
			return next(c)
		}
	}
}

func UserFrom(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(CtxUserKey).(*model.User)
	return user, ok && user != nil
}
