package handler

import (
	"net/http"

	"bookly/internal/middleware"
	"bookly/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/v1/books
type BookHandler struct {
	uc *usecase.BookUsecase
}

// DI
func NewBookHandler(uc *usecase.BookUsecase) *BookHandler {
	return &BookHandler{uc: uc}
}

type bookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	PageCount     int    `json:"page_count"`
	Language      string `json:"language"`
}

// 送られたフィールドだけ更新する
type bookPatchRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Publisher     *string `json:"publisher"`
	PublishedDate *string `json:"published_date"`
	PageCount     *int    `json:"page_count"`
	Language      *string `json:"language"`
}

func (h *BookHandler) List(c echo.Context) error {
	books, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) ListByUser(c echo.Context) error {
	books, err := h.uc.ListByUser(c.Request().Context(), c.Param("user_uid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	owner, _ := middleware.UserFrom(c)

	b, err := h.uc.Create(c.Request().Context(), owner, usecase.BookInput{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Language:      req.Language,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BookHandler) Get(c echo.Context) error {
	b, err := h.uc.Get(c.Request().Context(), c.Param("book_uid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookHandler) Update(c echo.Context) error {
	var req bookPatchRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	b, err := h.uc.Update(c.Request().Context(), c.Param("book_uid"), usecase.BookPatchInput{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Language:      req.Language,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("book_uid")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
