package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bookly/internal/domain/model"
	"bookly/internal/logging"
	"bookly/internal/repository"
	"bookly/internal/validator"
)

// tokenを発行する約束（auth.TokenCodecが実装）
type TokenIssuer interface {
	Encode(identity map[string]any, expiry time.Duration, refresh bool) (string, error)
}

// メールのリンク用token（auth.LinkSignerが実装）
type LinkCodec interface {
	Encode(data map[string]string) (string, error)
	Decode(raw string, maxAge time.Duration) (map[string]string, error)
}

// bcrypt（会員登録：Hash / ログイン：Verify）
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain string, hashed string) bool
}

// メール送信の約束。キューに積むだけで届いたかは見ない
type Mailer interface {
	SendEmail(ctx context.Context, recipients []string, subject, body string) error
}

type AuthConfig struct {
	Domain     string        // リンクに使うホスト
	RefreshTTL time.Duration // refresh tokenの有効期限
	LinkMaxAge time.Duration // メールのリンクの有効期限
}

type AuthUsecase struct {
	users       repository.UserRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	verifyLinks LinkCodec
	resetLinks  LinkCodec
	blocklist   repository.TokenBlocklist
	mailer      Mailer
	cfg         AuthConfig
	logger      *slog.Logger
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	verifyLinks LinkCodec,
	resetLinks LinkCodec,
	blocklist repository.TokenBlocklist,
	mailer Mailer,
	cfg AuthConfig,
	logger *slog.Logger,
) *AuthUsecase {
	if logger == nil {
		logger = logging.Discard()
	}
	return &AuthUsecase{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		verifyLinks: verifyLinks,
		resetLinks:  resetLinks,
		blocklist:   blocklist,
		mailer:      mailer,
		cfg:         cfg,
		logger:      logger,
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

type SignupOutput struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (SignupOutput, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validator.Signup(in.FirstName, in.LastName, in.Username, in.Email, in.Password); err != nil {
		return SignupOutput{}, errBadRequest(err)
	}

	//email重複チェック
	_, err := u.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return SignupOutput{}, NewHTTPError(http.StatusBadRequest, "user already exists")
	case !errors.Is(err, repository.ErrUserNotFound):
		return SignupOutput{}, errDB()
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return SignupOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         model.RoleUser,
		PasswordHash: hashed,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return SignupOutput{}, NewHTTPError(http.StatusBadRequest, "user already exists")
		}
		return SignupOutput{}, errDB()
	}

	//認証メール
	token, err := u.verifyLinks.Encode(map[string]string{"email": user.Email})
	if err != nil {
		return SignupOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	link := fmt.Sprintf("http://%s/api/v1/auth/verify/%s", u.cfg.Domain, token)
	html := fmt.Sprintf(`<h1>Verify Your Email</h1>
<p>Please click this <a href="%s">link</a> to verify your email</p>`, link)
	u.sendMail(ctx, []string{user.Email}, "Verify Your Email", html)

	return SignupOutput{
		Message: "Account created! Check your email to verify your account.",
		User:    user,
	}, nil
}

func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	data, err := u.verifyLinks.Decode(token, u.cfg.LinkMaxAge)
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid or expired link")
	}
	email := data["email"]
	if email == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid token: email not found")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return errNotFound("user not found")
	}
	if err != nil {
		return errDB()
	}

	if user.IsVerified {
		return nil
	}
	user.IsVerified = true
	if err := u.users.Update(ctx, user); err != nil {
		return errDB()
	}
	u.logger.InfoContext(ctx, "account verified", "user_uid", user.UID.String())
	return nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginUser struct {
	Email string `json:"email"`
	UID   string `json:"uid"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Message      string    `json:"message"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         LoginUser `json:"user"`
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validator.Login(in.Email, in.Password); err != nil {
		return LoginOutput{}, errBadRequest(err)
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return LoginOutput{}, errDB()
	}
	//メールとパスワードのどちらが違うかは返さない
	if user == nil || !u.hasher.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	uid := user.UID.String()
	access, err := u.tokens.Encode(map[string]any{
		"email":    user.Email,
		"user_uid": uid,
		"role":     string(user.Role),
	}, 0, false)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	refresh, err := u.tokens.Encode(map[string]any{
		"email":    user.Email,
		"user_uid": uid,
	}, u.cfg.RefreshTTL, true)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{
		Message:      "Login successful",
		AccessToken:  access,
		RefreshToken: refresh,
		User:         LoginUser{Email: user.Email, UID: uid},
	}, nil
}

type RefreshOutput struct {
	AccessToken string `json:"access_token"`
}

// Refreshはrefresh tokenのidentityで新しいaccess tokenを作る
func (u *AuthUsecase) Refresh(ctx context.Context, identity map[string]any) (RefreshOutput, error) {
	access, err := u.tokens.Encode(identity, 0, false)
	if err != nil {
		return RefreshOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return RefreshOutput{AccessToken: access}, nil
}

// Logoutはaccess tokenのjtiを失効リストに入れる
func (u *AuthUsecase) Logout(ctx context.Context, jti string) error {
	if jti == "" {
		return NewHTTPError(http.StatusUnauthorized, "invalid token data")
	}
	if err := u.blocklist.Revoke(ctx, jti); err != nil {
		u.logger.ErrorContext(ctx, "revoke failed", "jti", jti, "error", err)
		return NewHTTPError(http.StatusServiceUnavailable, "service unavailable")
	}
	return nil
}

// Meは本とレビュー付きのユーザーを返す
func (u *AuthUsecase) Me(ctx context.Context, email string) (*model.User, error) {
	user, err := u.users.FindWithRelations(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errNotFound("user not found")
	}
	if err != nil {
		return nil, errDB()
	}
	return user, nil
}

// ユーザーの有無に関わらず同じ応答を返す
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validator.Email(email); err != nil {
		return errBadRequest(err)
	}

	token, err := u.resetLinks.Encode(map[string]string{"email": email})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	link := fmt.Sprintf("http://%s/api/v1/auth/password-reset-confirm/%s", u.cfg.Domain, token)
	html := fmt.Sprintf(`<h1>Reset Your Password</h1>
<p>Click <a href="%s">here</a> to reset your password</p>`, link)
	u.sendMail(ctx, []string{email}, "Reset Your Password", html)
	return nil
}

type PasswordResetInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

func (u *AuthUsecase) ConfirmPasswordReset(ctx context.Context, in PasswordResetInput) error {
	if err := validator.PasswordReset(in.NewPassword, in.ConfirmPassword); err != nil {
		return errBadRequest(err)
	}

	data, err := u.resetLinks.Decode(in.Token, u.cfg.LinkMaxAge)
	if err != nil || data["email"] == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid or expired link")
	}

	user, err := u.users.FindByEmail(ctx, data["email"])
	if errors.Is(err, repository.ErrUserNotFound) {
		return errNotFound("user not found")
	}
	if err != nil {
		return errDB()
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	user.PasswordHash = hashed
	if err := u.users.Update(ctx, user); err != nil {
		return errDB()
	}
	return nil
}

// SendWelcomeは指定されたアドレスに歓迎メールを積む
func (u *AuthUsecase) SendWelcome(ctx context.Context, addresses []string) error {
	if err := validator.Addresses(addresses); err != nil {
		return errBadRequest(err)
	}
	if err := u.mailer.SendEmail(ctx, addresses, "Welcome to our app", "<h1>Welcome to the app</h1>"); err != nil {
		u.logger.ErrorContext(ctx, "welcome email enqueue failed", "error", err)
		return NewHTTPError(http.StatusServiceUnavailable, "service unavailable")
	}
	return nil
}

// 積めなくてもリクエストは失敗させない
func (u *AuthUsecase) sendMail(ctx context.Context, to []string, subject, html string) {
	if err := u.mailer.SendEmail(ctx, to, subject, html); err != nil {
		u.logger.WarnContext(ctx, "email enqueue failed", "subject", subject, "error", err)
	}
}
