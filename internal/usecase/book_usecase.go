package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookly/internal/domain/model"
	repo "bookly/internal/repository"
	"bookly/internal/validator"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type BookUsecase struct {
	books repo.BookRepository
}

// DI
func NewBookUsecase(books repo.BookRepository) *BookUsecase {
	return &BookUsecase{books: books}
}

// POST /booksの入力DTO
type BookInput struct {
	Title         string
	Author        string
	Publisher     string
	PublishedDate string // YYYY-MM-DD
	PageCount     int
	Language      string
}

// PATCH /books/:uid の入力DTO。nilは変更なし
type BookPatchInput struct {
	Title         *string
	Author        *string
	Publisher     *string
	PublishedDate *string
	PageCount     *int
	Language      *string
}

func (u *BookUsecase) List(ctx context.Context) ([]model.Book, error) {
	books, err := u.books.List(ctx)
	if err != nil {
		return nil, errDB()
	}
	return books, nil
}

func (u *BookUsecase) ListByUser(ctx context.Context, userUID string) ([]model.Book, error) {
	uid, err := parseUID(userUID, "user_uid")
	if err != nil {
		return nil, err
	}
	books, err := u.books.ListByUser(ctx, uid)
	if err != nil {
		return nil, errDB()
	}
	return books, nil
}

func (u *BookUsecase) Get(ctx context.Context, bookUID string) (*model.Book, error) {
	uid, err := parseUID(bookUID, "book_uid")
	if err != nil {
		return nil, err
	}
	b, err := u.books.FindByUID(ctx, uid)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("book not found")
	}
	if err != nil {
		return nil, errDB()
	}
	return b, nil
}

// 投稿者はtokenのユーザー
func (u *BookUsecase) Create(ctx context.Context, owner *model.User, in BookInput) (*model.Book, error) {
	if owner == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validator.Book(in.Title, in.Author, in.Publisher, in.Language, in.PageCount); err != nil {
		return nil, errBadRequest(err)
	}
	published, err := time.Parse(dateLayout, strings.TrimSpace(in.PublishedDate))
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "published_date must be YYYY-MM-DD")
	}

	ownerUID := owner.UID
	b := &model.Book{
		Title:         strings.TrimSpace(in.Title),
		Author:        strings.TrimSpace(in.Author),
		Publisher:     strings.TrimSpace(in.Publisher),
		PublishedDate: published,
		PageCount:     in.PageCount,
		Language:      strings.TrimSpace(in.Language),
		UserUID:       &ownerUID,
	}
	if err := u.books.Create(ctx, b); err != nil {
		return nil, errDB()
	}
	return b, nil
}

func (u *BookUsecase) Update(ctx context.Context, bookUID string, in BookPatchInput) (*model.Book, error) {
	uid, err := parseUID(bookUID, "book_uid")
	if err != nil {
		return nil, err
	}
	if err := validator.BookPatch(in.Title, in.Author, in.Publisher, in.Language, in.PageCount); err != nil {
		return nil, errBadRequest(err)
	}

	patch := repo.BookPatch{
		Title:     trimPtr(in.Title),
		Author:    trimPtr(in.Author),
		Publisher: trimPtr(in.Publisher),
		PageCount: in.PageCount,
		Language:  trimPtr(in.Language),
	}
	if in.PublishedDate != nil {
		d, err := time.Parse(dateLayout, strings.TrimSpace(*in.PublishedDate))
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "published_date must be YYYY-MM-DD")
		}
		patch.PublishedDate = &d
	}

	b, err := u.books.Update(ctx, uid, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("book not found")
	}
	if err != nil {
		return nil, errDB()
	}
	return b, nil
}

func (u *BookUsecase) Delete(ctx context.Context, bookUID string) error {
	uid, err := parseUID(bookUID, "book_uid")
	if err != nil {
		return err
	}
	err = u.books.Delete(ctx, uid)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("book not found")
	}
	if err != nil {
		return errDB()
	}
	return nil
}

func parseUID(raw string, field string) (uuid.UUID, error) {
	uid, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, NewHTTPError(http.StatusBadRequest, "invalid "+field)
	}
	return uid, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
