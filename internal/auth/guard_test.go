package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"bookly/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBlocklistはテスト用のインメモリ失効リスト
type memBlocklist struct {
	mu      sync.Mutex
	revoked map[string]struct{}
	err     error
	lookups int
}

func newMemBlocklist() *memBlocklist {
	return &memBlocklist{revoked: map[string]struct{}{}}
}

func (m *memBlocklist) Revoke(_ context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.revoked[jti] = struct{}{}
	return nil
}

func (m *memBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[jti]
	return ok, nil
}

func bearer(raw string) string { return "Bearer " + raw }

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"ok", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc", "abc", nil},
		{"empty", "", "", ErrCredentialsMissing},
		{"scheme only", "Bearer", "", ErrCredentialsMissing},
		{"scheme and spaces", "Bearer   ", "", ErrCredentialsMissing},
		{"basic auth", "Basic dXNlcjpwYXNz", "", ErrCredentialsMissing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BearerToken(tc.header)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGuard_KindChecks(t *testing.T) {
	codec := newTestCodec(t, "test-secret", "HS256")
	g := NewGuard(codec, newMemBlocklist(), nil)
	identity := map[string]any{"email": "a@x.com"}

	access, err := codec.Encode(identity, 0, false)
	require.NoError(t, err)
	refresh, err := codec.Encode(identity, 48*time.Hour, true)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = g.Validate(ctx, bearer(access), KindAccess)
	assert.NoError(t, err)

	_, err = g.Validate(ctx, bearer(refresh), KindRefresh)
	assert.NoError(t, err)

	_, err = g.Validate(ctx, bearer(refresh), KindAccess)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)
	assert.Equal(t, "access token cannot contain a refresh claim", Message(err))

	_, err = g.Validate(ctx, bearer(access), KindRefresh)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)
	assert.Equal(t, "refresh token must contain a refresh claim", Message(err))
}

func TestGuard_KindCheckRunsBeforeRevocation(t *testing.T) {
	codec := newTestCodec(t, "test-secret", "HS256")
	bl := newMemBlocklist()
	g := NewGuard(codec, bl, nil)

	refresh, err := codec.Encode(map[string]any{"email": "a@x.com"}, 0, true)
	require.NoError(t, err)

	_, err = g.Validate(context.Background(), bearer(refresh), KindAccess)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)
	assert.Equal(t, 0, bl.lookups)
}

func TestGuard_InvalidTokensNeverReachStore(t *testing.T) {
	codec := newTestCodec(t, "test-secret", "HS256")
	bl := newMemBlocklist()
	g := NewGuard(codec, bl, nil)

	_, err := g.Validate(context.Background(), "", KindAccess)
	assert.ErrorIs(t, err, ErrCredentialsMissing)

	_, err = g.Validate(context.Background(), bearer("garbage"), KindAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	assert.Equal(t, 0, bl.lookups)
}

func TestGuard_StoreUnavailable(t *testing.T) {
	codec := newTestCodec(t, "test-secret", "HS256")
	bl := newMemBlocklist()
	bl.err = errors.New("dial tcp: connection refused")
	g := NewGuard(codec, bl, nil)

	raw, err := codec.Encode(map[string]any{"email": "a@x.com"}, 0, false)
	require.NoError(t, err)

	_, err = g.Validate(context.Background(), bearer(raw), KindAccess)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 503, HTTPStatus(err))
	assert.Equal(t, "service unavailable", Message(err))
}

func TestGuard_CanceledContext(t *testing.T) {
	codec := newTestCodec(t, "test-secret", "HS256")
	bl := newMemBlocklist()
	g := NewGuard(codec, bl, nil)

	raw, err := codec.Encode(map[string]any{"email": "a@x.com"}, 0, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = g.Validate(ctx, bearer(raw), KindAccess)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
	assert.Equal(t, 0, bl.lookups)
}

// ログイン → 保護リソース → ログアウト → 同じtokenが拒否される
func TestScenario_LoginAccessLogout(t *testing.T) {
	ctx := context.Background()
	codec := newTestCodec(t, "test-secret", "HS256")
	bl := newMemBlocklist()
	g := NewGuard(codec, bl, nil)

	users := &stubUsers{byEmail: map[string]*model.User{
		"a@x.com": {Email: "a@x.com", Role: model.RoleUser, IsVerified: true},
	}}

	access, err := codec.Encode(map[string]any{"email": "a@x.com", "role": "user"}, 0, false)
	require.NoError(t, err)

	claims, err := g.Validate(ctx, bearer(access), KindAccess)
	require.NoError(t, err)

	user, err := ResolveUser(ctx, claims, users)
	require.NoError(t, err)
	require.NoError(t, Authorize(user, model.RoleUser, model.RoleAdmin))

	require.NoError(t, bl.Revoke(ctx, claims.JTI()))

	_, err = g.Validate(ctx, bearer(access), KindAccess)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.Equal(t, 401, HTTPStatus(err))
}

// 未認証ユーザーはロールより先に403
func TestScenario_UnverifiedUser(t *testing.T) {
	ctx := context.Background()
	codec := newTestCodec(t, "test-secret", "HS256")
	g := NewGuard(codec, newMemBlocklist(), nil)

	users := &stubUsers{byEmail: map[string]*model.User{
		"new@x.com": {Email: "new@x.com", Role: model.RoleUser, IsVerified: false},
	}}

	access, err := codec.Encode(map[string]any{"email": "new@x.com"}, 0, false)
	require.NoError(t, err)

	claims, err := g.Validate(ctx, bearer(access), KindAccess)
	require.NoError(t, err)

	user, err := ResolveUser(ctx, claims, users)
	require.NoError(t, err)

	err = Authorize(user, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserUnverified)
	assert.Equal(t, 403, HTTPStatus(err))
}

// refresh tokenで保護リソースには入れない。refreshエンドポイントでは通る
func TestScenario_RefreshTokenMisuse(t *testing.T) {
	ctx := context.Background()
	codec := newTestCodec(t, "test-secret", "HS256")
	g := NewGuard(codec, newMemBlocklist(), nil)

	refresh, err := codec.Encode(map[string]any{"email": "a@x.com"}, 48*time.Hour, true)
	require.NoError(t, err)

	_, err = g.Validate(ctx, bearer(refresh), KindAccess)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)
	assert.Equal(t, 401, HTTPStatus(err))

	claims, err := g.Validate(ctx, bearer(refresh), KindRefresh)
	require.NoError(t, err)
	assert.True(t, claims.Refresh)
	assert.Equal(t, "a@x.com", claims.Email())
}
