package handler

import (
	"net/http"

	"bookly/internal/middleware"
	"bookly/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/v1/reviews
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

// DI
func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type reviewRequest struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

// 管理者のみ
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	rv, err := h.uc.Get(c.Request().Context(), c.Param("review_uid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rv)
}

// POST /book/:book_uid
func (h *ReviewHandler) Add(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	user, _ := middleware.UserFrom(c)

	rv, err := h.uc.Add(c.Request().Context(), user, c.Param("book_uid"), usecase.ReviewInput{
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rv)
}

// 書いた本人だけ
func (h *ReviewHandler) Delete(c echo.Context) error {
	user, _ := middleware.UserFrom(c)
	if err := h.uc.Delete(c.Request().Context(), user, c.Param("review_uid")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
