package repository

import (
	"context"

	"bookly/internal/domain/model"
	domainrepo "bookly/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookGormRepository struct {
	db *gorm.DB
}

var _ domainrepo.BookRepository = (*BookGormRepository)(nil)

// DI
func NewBookGormRepository(db *gorm.DB) *BookGormRepository {
	return &BookGormRepository{db: db}
}

// 新しい順で全件
func (r *BookGormRepository) List(ctx context.Context) ([]model.Book, error) {
	books := []model.Book{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&books).Error; err != nil {
		return []model.Book{}, err
	}
	return books, nil
}

// 投稿者で絞る
func (r *BookGormRepository) ListByUser(ctx context.Context, userUID uuid.UUID) ([]model.Book, error) {
	books := []model.Book{}
	err := r.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("created_at desc").
		Find(&books).Error
	if err != nil {
		return []model.Book{}, err
	}
	return books, nil
}

// UIDで本を取得（tags / reviews付き）
func (r *BookGormRepository) FindByUID(ctx context.Context, uid uuid.UUID) (*model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Where("uid = ?", uid).
		First(&b).Error
	if err != nil {
		return nil, translate(err, domainrepo.ErrNotFound)
	}
	return &b, nil
}

// 本の作成
func (r *BookGormRepository) Create(ctx context.Context, b *model.Book) error {
	if b.UID == uuid.Nil {
		b.UID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Omit("Tags", "Reviews").Create(b).Error, domainrepo.ErrNotFound)
}

// 渡されたフィールドだけ更新
func (r *BookGormRepository) Update(ctx context.Context, uid uuid.UUID, patch domainrepo.BookPatch) (*model.Book, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Author != nil {
		updates["author"] = *patch.Author
	}
	if patch.Publisher != nil {
		updates["publisher"] = *patch.Publisher
	}
	if patch.PublishedDate != nil {
		updates["published_date"] = *patch.PublishedDate
	}
	if patch.PageCount != nil {
		updates["page_count"] = *patch.PageCount
	}
	if patch.Language != nil {
		updates["language"] = *patch.Language
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&model.Book{}).Where("uid = ?", uid).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domainrepo.ErrNotFound
		}
	}

	return r.FindByUID(ctx, uid)
}

// 本の削除（reviewsはFKでcascade）
func (r *BookGormRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_tags WHERE book_uid = ?", uid).Error; err != nil {
			return err
		}
		res := tx.Where("uid = ?", uid).Delete(&model.Book{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainrepo.ErrNotFound
		}
		return nil
	})
}
