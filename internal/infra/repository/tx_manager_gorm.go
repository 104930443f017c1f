package repository

import (
	"context"

	repo "bookly/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	books repo.BookRepository
	tags  repo.TagRepository
}

func (r *txReposGorm) Books() repo.BookRepository { return r.books }
func (r *txReposGorm) Tags() repo.TagRepository   { return r.tags }

type TxManagerGorm struct {
	db *gorm.DB
}

var _ repo.TransactionManager = (*TxManagerGorm)(nil)

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			books: NewBookGormRepository(tx),
			tags:  NewTagGormRepository(tx),
		}
		return fn(r)
	})
}
