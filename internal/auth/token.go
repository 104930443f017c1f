package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bookly/internal/logging"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// 有効期限の指定がないときのaccess tokenの寿命
const DefaultAccessTokenTTL = time.Hour

// Claimsはbearer tokenのpayload。
// user の中身は発行側が決める（email / user_uid / role）。
type Claims struct {
	User    map[string]any `json:"user"`
	Refresh bool           `json:"refresh"`
	jwt.RegisteredClaims
}

// token id（失効リストのキー）
func (c *Claims) JTI() string {
	return c.ID
}

func (c *Claims) Email() string {
	return c.userString("email")
}

func (c *Claims) UserUID() string {
	return c.userString("user_uid")
}

func (c *Claims) Role() string {
	return c.userString("role")
}

func (c *Claims) userString(key string) string {
	if c.User == nil {
		return ""
	}
	s, _ := c.User[key].(string)
	return s
}

// TokenCodecはbearer tokenの発行と検証
type TokenCodec struct {
	secret    []byte
	method    jwt.SigningMethod
	accessTTL time.Duration
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

// DI
func NewTokenCodec(secret string, algorithm string, accessTTL time.Duration, logger *slog.Logger) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &TokenCodec{
		secret:    []byte(secret),
		method:    method,
		accessTTL: accessTTL,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logger,
	}, nil
}

// Encodeはidentityを包んだtokenを発行する。
// expiryが0ならaccess tokenの既定の寿命を使う。
func (c *TokenCodec) Encode(identity map[string]any, expiry time.Duration, refresh bool) (string, error) {
	if expiry == 0 {
		expiry = c.accessTTL
	}
	now := c.now()

	claims := &Claims{
		User:    identity,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			ID:        c.newID(),
		},
	}

	t := jwt.NewWithClaims(c.method, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decodeはtokenを検証してclaimsを返す。
// 失敗の理由（期限切れ・署名・形式）は呼び出し側には返さずErrTokenInvalidにまとめる。
func (c *TokenCodec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || token == nil || !token.Valid {
		c.logger.Debug("bearer token rejected", "reason", err)
		return nil, ErrTokenInvalid
	}

	//期限はcodecの時計で判定する（exp必須）
	if !claims.VerifyExpiresAt(c.now(), true) {
		c.logger.Debug("bearer token rejected", "reason", "expired")
		return nil, ErrTokenInvalid
	}

	//jtiがないと失効チェックができない
	if claims.ID == "" {
		c.logger.Debug("bearer token rejected", "reason", "missing jti")
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
