package repository

import (
	"context"

	"bookly/internal/domain/model"

	"github.com/google/uuid"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。email重複はErrDuplicate
	Create(ctx context.Context, user *model.User) error
	// UIDからユーザーを1件取得する。
	FindByUID(ctx context.Context, uid uuid.UUID) (*model.User, error)
	//メールからユーザーを一件取得する。なければErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// booksとreviewsも一緒に読む（/me用）
	FindWithRelations(ctx context.Context, email string) (*model.User, error)
	// ユーザー情報の更新 => 認証済みフラグ・パスワードなど
	Update(ctx context.Context, user *model.User) error
}
