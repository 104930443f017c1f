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

type ReviewUsecase struct {
	reviews repo.ReviewRepository
	books   repo.BookRepository
}

// DI
func NewReviewUsecase(reviews repo.ReviewRepository, books repo.BookRepository) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, books: books}
}

type ReviewInput struct {
	Rating     int
	ReviewText string
}

func (u *ReviewUsecase) List(ctx context.Context) ([]model.Review, error) {
	reviews, err := u.reviews.List(ctx)
	if err != nil {
		return nil, errDB()
	}
	return reviews, nil
}

func (u *ReviewUsecase) Get(ctx context.Context, reviewUID string) (*model.Review, error) {
	uid, err := parseUID(reviewUID, "review_uid")
	if err != nil {
		return nil, err
	}
	rv, err := u.reviews.FindByUID(ctx, uid)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("review not found")
	}
	if err != nil {
		return nil, errDB()
	}
	return rv, nil
}

// 本にレビューを付ける。書いた人はtokenのユーザー
func (u *ReviewUsecase) Add(ctx context.Context, author *model.User, bookUID string, in ReviewInput) (*model.Review, error) {
	if author == nil {
		return nil, errNotFound("user not found")
	}
	uid, err := parseUID(bookUID, "book_uid")
	if err != nil {
		return nil, err
	}
	if err := validator.Review(in.Rating, in.ReviewText); err != nil {
		return nil, errBadRequest(err)
	}

	book, err := u.books.FindByUID(ctx, uid)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("book not found")
	}
	if err != nil {
		return nil, errDB()
	}

	authorUID := author.UID
	bookRef := book.UID
	rv := &model.Review{
		Rating:     in.Rating,
		ReviewText: strings.TrimSpace(in.ReviewText),
		UserUID:    &authorUID,
		BookUID:    &bookRef,
	}
	if err := u.reviews.Create(ctx, rv); err != nil {
		return nil, errDB()
	}
	return rv, nil
}

// 書いた本人だけ消せる
func (u *ReviewUsecase) Delete(ctx context.Context, requester *model.User, reviewUID string) error {
	if requester == nil {
		return errNotFound("user not found")
	}
	uid, err := parseUID(reviewUID, "review_uid")
	if err != nil {
		return err
	}

	rv, err := u.reviews.FindByUID(ctx, uid)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("review not found")
	}
	if err != nil {
		return errDB()
	}
	if rv.UserUID == nil || *rv.UserUID != requester.UID {
		return NewHTTPError(http.StatusForbidden, "cannot delete this review")
	}

	err = u.reviews.Delete(ctx, uid)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("review not found")
	}
	if err != nil {
		return errDB()
	}
	return nil
}
