package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bookly/internal/domain/model"
	repo "bookly/internal/repository"
	"bookly/internal/validator"
)

type TagUsecase struct {
	tags repo.TagRepository
	tx   repo.TransactionManager
}

// DI
func NewTagUsecase(tags repo.TagRepository, tx repo.TransactionManager) *TagUsecase {
	return &TagUsecase{tags: tags, tx: tx}
}

// 1件もなければ404
func (u *TagUsecase) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := u.tags.List(ctx)
	if err != nil {
		return nil, errDB()
	}
	if len(tags) == 0 {
		return nil, errNotFound("no tags found")
	}
	return tags, nil
}

func (u *TagUsecase) Create(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if err := validator.TagName(name); err != nil {
		return nil, errBadRequest(err)
	}

	_, err := u.tags.FindByName(ctx, name)
	switch {
	case err == nil:
		return nil, NewHTTPError(http.StatusBadRequest, "tag already exists")
	case !errors.Is(err, repo.ErrNotFound):
		return nil, errDB()
	}

	t := &model.Tag{Name: name}
	if err := u.tags.Create(ctx, t); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, NewHTTPError(http.StatusBadRequest, "tag already exists")
		}
		return nil, errDB()
	}
	return t, nil
}

// AddTagsToBookは名前でタグを付ける。ないタグはその場で作る。
// 全部ひとつのトランザクションで行う。
func (u *TagUsecase) AddTagsToBook(ctx context.Context, bookUID string, names []string) (*model.Book, error) {
	uid, err := parseUID(bookUID, "book_uid")
	if err != nil {
		return nil, err
	}
	cleaned := make([]string, 0, len(names))
	seen := map[string]struct{}{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if err := validator.TagName(n); err != nil {
			return nil, errBadRequest(err)
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		cleaned = append(cleaned, n)
	}
	if len(cleaned) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "tags: cannot be blank")
	}

	var out *model.Book
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Books().FindByUID(ctx, uid); err != nil {
			return err
		}

		tags := make([]model.Tag, 0, len(cleaned))
		for _, n := range cleaned {
			t, err := r.Tags().FindByName(ctx, n)
			if errors.Is(err, repo.ErrNotFound) {
				t = &model.Tag{Name: n}
				err = r.Tags().Create(ctx, t)
			}
			if err != nil {
				return err
			}
			tags = append(tags, *t)
		}

		if err := r.Tags().AttachToBook(ctx, uid, tags); err != nil {
			return err
		}

		b, err := r.Books().FindByUID(ctx, uid)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("book not found")
	}
	if err != nil {
		return nil, errDB()
	}
	return out, nil
}

func (u *TagUsecase) Update(ctx context.Context, tagUID string, name string) (*model.Tag, error) {
	uid, err := parseUID(tagUID, "tag_uid")
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validator.TagName(name); err != nil {
		return nil, errBadRequest(err)
	}

	t, err := u.tags.Rename(ctx, uid, name)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, errNotFound("tag not found")
	case errors.Is(err, repo.ErrDuplicate):
		return nil, NewHTTPError(http.StatusBadRequest, "tag already exists")
	case err != nil:
		return nil, errDB()
	}
	return t, nil
}

func (u *TagUsecase) Delete(ctx context.Context, tagUID string) error {
	uid, err := parseUID(tagUID, "tag_uid")
	if err != nil {
		return err
	}
	err = u.tags.Delete(ctx, uid)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("tag not found")
	}
	if err != nil {
		return errDB()
	}
	return nil
}
