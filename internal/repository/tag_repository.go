package repository

import (
	"context"

	"bookly/internal/domain/model"

	"github.com/google/uuid"
)

type TagRepository interface {
	// 新しい順
	List(ctx context.Context) ([]model.Tag, error)
	FindByUID(ctx context.Context, uid uuid.UUID) (*model.Tag, error)
	FindByName(ctx context.Context, name string) (*model.Tag, error)

	// 名前重複はErrDuplicate
	Create(ctx context.Context, t *model.Tag) error
	Rename(ctx context.Context, uid uuid.UUID, name string) (*model.Tag, error)
	Delete(ctx context.Context, uid uuid.UUID) error

	// book_tagsに関連を追加（既にあれば何もしない）
	AttachToBook(ctx context.Context, bookUID uuid.UUID, tags []model.Tag) error
}
