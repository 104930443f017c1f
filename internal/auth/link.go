package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"log/slog"
	"time"

	"bookly/internal/logging"

	"github.com/golang-jwt/jwt/v4"
)

// 発行時刻の多少のずれは許す
const linkClockSkew = 30 * time.Second

type linkClaims struct {
	Data map[string]string `json:"data"`
	Salt string            `json:"slt"`
	jwt.RegisteredClaims
}

// LinkSignerはメール認証・パスワードリセットのURLに載せるtokenを作る。
// 鍵はsecretとsaltから導出するので、bearer tokenや別saltのtokenは通らない。
// 期限はtokenに書かず、発行時刻(iat)とDecode時のmaxAgeで判定する。
type LinkSigner struct {
	key    []byte
	salt   string
	now    func() time.Time
	logger *slog.Logger
}

// DI
func NewLinkSigner(secret string, salt string, logger *slog.Logger) *LinkSigner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LinkSigner{
		key:    deriveKey(secret, salt),
		salt:   salt,
		now:    time.Now,
		logger: logger,
	}
}

func deriveKey(secret string, salt string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("bookly.link." + salt))
	return mac.Sum(nil)
}

// URLにそのまま載せられる（base64url + "."）
func (s *LinkSigner) Encode(data map[string]string) (string, error) {
	claims := &linkClaims{
		Data: data,
		Salt: s.salt,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// maxAgeが0以下なら経過時間は見ない
func (s *LinkSigner) Decode(raw string, maxAge time.Duration) (map[string]string, error) {
	claims := &linkClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || token == nil || !token.Valid {
		s.logger.Debug("link token rejected", "salt", s.salt, "reason", err)
		return nil, ErrTokenInvalid
	}

	if claims.Salt != s.salt || claims.IssuedAt == nil {
		s.logger.Debug("link token rejected", "salt", s.salt, "reason", "bad payload")
		return nil, ErrTokenInvalid
	}

	age := s.now().Sub(claims.IssuedAt.Time)
	if age < -linkClockSkew {
		s.logger.Debug("link token rejected", "salt", s.salt, "reason", "issued in the future")
		return nil, ErrTokenInvalid
	}
	if maxAge > 0 && age > maxAge {
		s.logger.Debug("link token rejected", "salt", s.salt, "reason", "expired", "age", age)
		return nil, ErrTokenInvalid
	}

	if claims.Data == nil {
		return map[string]string{}, nil
	}
	return claims.Data, nil
}
