package auth

import (
	"errors"
	"net/http"
)

var (
	// 401 Authorizationヘッダがない / Bearer形式でない
	ErrCredentialsMissing = errors.New("authorization credentials missing")
	// 401 期限切れ・署名不正・壊れたtoken（区別しない）
	ErrTokenInvalid = errors.New("invalid token data")
	// 401 access/refreshの取り違え
	ErrTokenKindMismatch = errors.New("token kind mismatch")
	// 401 ログアウト済み
	ErrTokenRevoked = errors.New("token is revoked")
	// 404
	ErrUserNotFound = errors.New("user not found")
	// 403
	ErrUserUnverified = errors.New("user is not verified")
	// 403
	ErrInsufficientRole = errors.New("user does not have the required role")
	// 503 redis / DB に届かない
	ErrStoreUnavailable = errors.New("service unavailable")
)

// kindErrorはどちらの向きの取り違えかをメッセージに持つ
type kindError struct {
	msg string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return ErrTokenKindMismatch }

var (
	errAccessWithRefreshClaim = &kindError{msg: "access token cannot contain a refresh claim"}
	errRefreshWithoutClaim    = &kindError{msg: "refresh token must contain a refresh claim"}
)

// HTTPStatusは認証エラーをHTTPステータスに変換する。
// 認証エラー以外は500。
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCredentialsMissing),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenKindMismatch),
		errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserUnverified), errors.Is(err, ErrInsufficientRole):
		return http.StatusForbidden
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Messageはクライアントに返す固定メッセージ。内部の原因は出さない。
func Message(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	for _, known := range []error{
		ErrCredentialsMissing,
		ErrTokenInvalid,
		ErrTokenRevoked,
		ErrUserNotFound,
		ErrUserUnverified,
		ErrInsufficientRole,
		ErrStoreUnavailable,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal error"
}
