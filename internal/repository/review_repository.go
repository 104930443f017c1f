package repository

import (
	"context"

	"bookly/internal/domain/model"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	// 新しい順
	List(ctx context.Context) ([]model.Review, error)
	FindByUID(ctx context.Context, uid uuid.UUID) (*model.Review, error)
	Create(ctx context.Context, r *model.Review) error
	Delete(ctx context.Context, uid uuid.UUID) error
}
