package repository

import (
	"context"

	"bookly/internal/domain/model"
	domainrepo "bookly/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

var _ domainrepo.ReviewRepository = (*ReviewGormRepository)(nil)

// DI
func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) List(ctx context.Context) ([]model.Review, error) {
	reviews := []model.Review{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&reviews).Error; err != nil {
		return []model.Review{}, err
	}
	return reviews, nil
}

func (r *ReviewGormRepository) FindByUID(ctx context.Context, uid uuid.UUID) (*model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&rv).Error; err != nil {
		return nil, translate(err, domainrepo.ErrNotFound)
	}
	return &rv, nil
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv *model.Review) error {
	if rv.UID == uuid.Nil {
		rv.UID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(rv).Error, domainrepo.ErrNotFound)
}

func (r *ReviewGormRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("uid = ?", uid).Delete(&model.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}
