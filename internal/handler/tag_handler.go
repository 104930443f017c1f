package handler

import (
	"net/http"

	"bookly/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/v1/tags
type TagHandler struct {
	uc *usecase.TagUsecase
}

// DI
func NewTagHandler(uc *usecase.TagUsecase) *TagHandler {
	return &TagHandler{uc: uc}
}

type tagRequest struct {
	Name string `json:"name"`
}

type tagAddRequest struct {
	Tags []tagRequest `json:"tags"`
}

func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) Create(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	t, err := h.uc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// POST /book/:book_uid/tags
func (h *TagHandler) AddToBook(c echo.Context) error {
	var req tagAddRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	names := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		names = append(names, t.Name)
	}

	b, err := h.uc.AddTagsToBook(c.Request().Context(), c.Param("book_uid"), names)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *TagHandler) Update(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	t, err := h.uc.Update(c.Request().Context(), c.Param("tag_uid"), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TagHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("tag_uid")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
