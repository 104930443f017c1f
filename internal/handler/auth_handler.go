package handler

import (
	"net/http"

	"bookly/internal/middleware"
	"bookly/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/v1/auth
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /signup のリクエストボディ。
type signupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// /login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type addressesRequest struct {
	Addresses []string `json:"addresses"`
}

type passwordResetConfirmRequest struct {
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

// POST /signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	out, err := h.uc.Signup(c.Request().Context(), usecase.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /verify/:token
func (h *AuthHandler) Verify(c echo.Context) error {
	if err := h.uc.VerifyEmail(c.Request().Context(), c.Param("token")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Account verified successfully"})
}

// POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /refresh_token（refresh tokenが必要）
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token data"})
	}
	out, err := h.uc.Refresh(c.Request().Context(), claims.User)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /logout（access tokenが必要）
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token data"})
	}
	if err := h.uc.Logout(c.Request().Context(), claims.JTI()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// GET /me
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token data"})
	}
	out, err := h.uc.Me(c.Request().Context(), user.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /password-reset-request
func (h *AuthHandler) PasswordResetRequest(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := h.uc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password reset instructions sent to your email"})
}

// POST /password-reset-confirm/:token
func (h *AuthHandler) PasswordResetConfirm(c echo.Context) error {
	var req passwordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	err := h.uc.ConfirmPasswordReset(c.Request().Context(), usecase.PasswordResetInput{
		Token:           c.Param("token"),
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successfully"})
}

// POST /send_mail
func (h *AuthHandler) SendMail(c echo.Context) error {
	var req addressesRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := h.uc.SendWelcome(c.Request().Context(), req.Addresses); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Email sent successfully"})
}
