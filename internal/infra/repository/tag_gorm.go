package repository

import (
	"context"

	"bookly/internal/domain/model"
	domainrepo "bookly/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagGormRepository struct {
	db *gorm.DB
}

var _ domainrepo.TagRepository = (*TagGormRepository)(nil)

// DI
func NewTagGormRepository(db *gorm.DB) *TagGormRepository {
	return &TagGormRepository{db: db}
}

func (r *TagGormRepository) List(ctx context.Context) ([]model.Tag, error) {
	tags := []model.Tag{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&tags).Error; err != nil {
		return []model.Tag{}, err
	}
	return tags, nil
}

func (r *TagGormRepository) FindByUID(ctx context.Context, uid uuid.UUID) (*model.Tag, error) {
	var t model.Tag
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&t).Error; err != nil {
		return nil, translate(err, domainrepo.ErrNotFound)
	}
	return &t, nil
}

func (r *TagGormRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var t model.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, translate(err, domainrepo.ErrNotFound)
	}
	return &t, nil
}

func (r *TagGormRepository) Create(ctx context.Context, t *model.Tag) error {
	if t.UID == uuid.Nil {
		t.UID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(t).Error, domainrepo.ErrNotFound)
}

func (r *TagGormRepository) Rename(ctx context.Context, uid uuid.UUID, name string) (*model.Tag, error) {
	res := r.db.WithContext(ctx).Model(&model.Tag{}).Where("uid = ?", uid).Update("name", name)
	if res.Error != nil {
		return nil, translate(res.Error, domainrepo.ErrNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, domainrepo.ErrNotFound
	}
	return r.FindByUID(ctx, uid)
}

// タグと本との関連をまとめて消す
func (r *TagGormRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_tags WHERE tag_uid = ?", uid).Error; err != nil {
			return err
		}
		res := tx.Where("uid = ?", uid).Delete(&model.Tag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainrepo.ErrNotFound
		}
		return nil
	})
}

func (r *TagGormRepository) AttachToBook(ctx context.Context, bookUID uuid.UUID, tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	book := model.Book{UID: bookUID}
	return r.db.WithContext(ctx).Model(&book).Association("Tags").Append(tags)
}
