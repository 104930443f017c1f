package server

import (
	"net/http"

	"bookly/internal/auth"
	"bookly/internal/domain/model"
	"bookly/internal/handler"
	"bookly/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/", health(d))

	anyRole := middleware.Authenticated(d.Tokens, d.Users, model.RoleUser, model.RoleAdmin)
	adminOnly := middleware.Authenticated(d.Tokens, d.Users, model.RoleAdmin)

	a := e.Group(APIPrefix + "/auth")
	a.POST("/signup", d.Auth.Signup)
	a.GET("/verify/:token", d.Auth.Verify)
	a.POST("/login", d.Auth.Login)
	a.GET("/refresh_token", d.Auth.Refresh, middleware.RequireToken(d.Tokens, auth.KindRefresh))
	a.GET("/logout", d.Auth.Logout, middleware.RequireToken(d.Tokens, auth.KindAccess))
	a.GET("/me", d.Auth.Me, anyRole...)
	a.POST("/password-reset-request", d.Auth.PasswordResetRequest)
	a.POST("/password-reset-confirm/:token", d.Auth.PasswordResetConfirm)
	a.POST("/send_mail", d.Auth.SendMail)

	b := e.Group(APIPrefix+"/books", anyRole...)
	b.GET("", d.Books.List)
	b.GET("/", d.Books.List)
	b.POST("", d.Books.Create)
	b.POST("/", d.Books.Create)
	b.GET("/user/:user_uid", d.Books.ListByUser)
	b.GET("/:book_uid", d.Books.Get)
	b.PATCH("/:book_uid", d.Books.Update)
	b.DELETE("/:book_uid", d.Books.Delete)

	t := e.Group(APIPrefix+"/tags", anyRole...)
	t.GET("", d.Tags.List)
	t.GET("/", d.Tags.List)
	t.POST("", d.Tags.Create)
	t.POST("/", d.Tags.Create)
	t.POST("/book/:book_uid/tags", d.Tags.AddToBook)
	t.PUT("/:tag_uid", d.Tags.Update)
	t.DELETE("/:tag_uid", d.Tags.Delete)

	r := e.Group(APIPrefix + "/reviews")
	r.GET("", d.Reviews.List, adminOnly...)
	r.GET("/", d.Reviews.List, adminOnly...)
	r.GET("/:review_uid", d.Reviews.Get, anyRole...)
	r.POST("/book/:book_uid", d.Reviews.Add, anyRole...)
	r.DELETE("/:review_uid", d.Reviews.Delete, anyRole...)
}

func health(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		if d.Health != nil {
			if err := d.Health(c.Request().Context()); err != nil {
				d.Logger.ErrorContext(c.Request().Context(), "database ping failed", "error", err)
				return c.JSON(http.StatusServiceUnavailable, handler.ErrorResponse{Error: "database connection failed"})
			}
		}
		return c.JSON(http.StatusOK, handler.MessageResponse{Message: "database connection successful"})
	}
}
