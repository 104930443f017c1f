package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bookly/internal/logging"
	"bookly/internal/repository"
)

// TokenKindはエンドポイントが要求するtokenの種類
type TokenKind int

const (
	KindAccess TokenKind = iota
	KindRefresh
)

func (k TokenKind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindRefresh:
		return "refresh"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// 種類の判定。refreshフラグがないtokenはaccess扱い
func (k TokenKind) check(c *Claims) error {
	switch k {
	case KindAccess:
		if c.Refresh {
			return errAccessWithRefreshClaim
		}
	case KindRefresh:
		if !c.Refresh {
			return errRefreshWithoutClaim
		}
	default:
		return ErrTokenKindMismatch
	}
	return nil
}

// TokenDecoderはbearer tokenをclaimsにする約束（TokenCodecが実装）
type TokenDecoder interface {
	Decode(raw string) (*Claims, error)
}

// Guardはbearer tokenの検証パイプライン。
// 取り出し → デコード → 種類チェック → 失効チェック の順で、最初の失敗で止まる。
type Guard struct {
	decoder   TokenDecoder
	blocklist repository.TokenBlocklist
	logger    *slog.Logger
}

// DI
func NewGuard(decoder TokenDecoder, blocklist repository.TokenBlocklist, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Guard{
		decoder:   decoder,
		blocklist: blocklist,
		logger:    logger,
	}
}

// Validateは Authorization ヘッダの値を検証してclaimsを返す。
func (g *Guard) Validate(ctx context.Context, authorization string, kind TokenKind) (*Claims, error) {
	//Bearer形式か確認してtokenを抜く
	raw, err := BearerToken(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := g.decoder.Decode(raw)
	if err != nil || claims == nil {
		return nil, ErrTokenInvalid
	}

	if err := kind.check(claims); err != nil {
		g.logger.DebugContext(ctx, "token kind mismatch", "want", kind.String(), "jti", claims.JTI())
		return nil, err
	}

	//キャンセル済みならストアに行かない
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	revoked, err := g.blocklist.IsRevoked(ctx, claims.JTI())
	if err != nil {
		g.logger.ErrorContext(ctx, "blocklist lookup failed", "jti", claims.JTI(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// BearerTokenは "Bearer <token>" からtokenを取り出す。
func BearerToken(authorization string) (string, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return "", ErrCredentialsMissing
	}

	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrCredentialsMissing
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", ErrCredentialsMissing
	}
	return raw, nil
}
