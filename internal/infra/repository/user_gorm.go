package repository

import (
	"context"

	"bookly/internal/domain/model"
	domainrepo "bookly/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if user.UID == uuid.Nil {
		user.UID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(user).Error, domainrepo.ErrUserNotFound)
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, translate(err, domainrepo.ErrUserNotFound)
	}

	return &u, nil
}

// UIDでユーザーを1件取得
func (r *userGormRepository) FindByUID(ctx context.Context, uid uuid.UUID) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&u).Error
	if err != nil {
		return nil, translate(err, domainrepo.ErrUserNotFound)
	}

	return &u, nil
}

func (r *userGormRepository) FindWithRelations(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, translate(err, domainrepo.ErrUserNotFound)
	}

	return &u, nil
}

// ユーザーを更新。関連は保存しない
func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).Omit("Books", "Reviews").Save(user)
	if res.Error != nil {
		return translate(res.Error, domainrepo.ErrUserNotFound)
	}
	return nil
}
