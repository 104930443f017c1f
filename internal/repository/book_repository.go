package repository

import (
	"context"
	"time"

	"bookly/internal/domain/model"

	"github.com/google/uuid"
)

// 本の部分更新。nilのフィールドは触らない
type BookPatch struct {
	Title         *string
	Author        *string
	Publisher     *string
	PublishedDate *time.Time
	PageCount     *int
	Language      *string
}

// 本の永続化（保存・取得）だけを約束。
type BookRepository interface {
	// 新しい順
	List(ctx context.Context) ([]model.Book, error)
	ListByUser(ctx context.Context, userUID uuid.UUID) ([]model.Book, error)
	// tagsとreviewsをpreloadする
	FindByUID(ctx context.Context, uid uuid.UUID) (*model.Book, error)

	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, uid uuid.UUID, patch BookPatch) (*model.Book, error)
	Delete(ctx context.Context, uid uuid.UUID) error
}
