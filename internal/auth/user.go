package auth

import (
	"context"
	"errors"
	"fmt"

	"bookly/internal/domain/model"
	"bookly/internal/repository"
)

// UserFinderはemailでユーザーを探す約束（UserRepositoryが満たす）
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// ResolveUserはclaimsのuser.emailからユーザーを取得する。
// キャッシュもリトライもしない。
func ResolveUser(ctx context.Context, claims *Claims, users UserFinder) (*model.User, error) {
	if claims == nil {
		return nil, ErrTokenInvalid
	}
	email := claims.Email()
	if email == "" {
		return nil, ErrUserNotFound
	}

	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
