package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// よく使うもの
func errBadRequest(err error) error { return NewHTTPError(http.StatusBadRequest, err.Error()) }
func errNotFound(msg string) error  { return NewHTTPError(http.StatusNotFound, msg) }
func errDB() error                  { return NewHTTPError(http.StatusInternalServerError, "db error") }
