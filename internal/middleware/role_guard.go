package middleware

import (
	"bookly/internal/auth"
	"bookly/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextのユーザーが認証済みで、許可されたロールかを確認します。
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	checker := auth.NewRoleChecker(roles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := UserFrom(c)
			if err := checker.Check(user); err != nil {
				return authError(c, err)
			}
			return next(c)
		}
	}
}

// Authenticatedはaccess token → ユーザー取得 → ロール確認 をまとめたもの
func Authenticated(v TokenValidator, users auth.UserFinder, roles ...model.Role) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequireToken(v, auth.KindAccess),
		CurrentUser(users),
		RequireRoles(roles...),
	}
}
