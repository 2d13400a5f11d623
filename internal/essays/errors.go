package essays

import (
	"errors"
	"net/http"
)

// Domain errors for essay operations.
var (
	ErrNotFound     = errors.New("essay not found")
	ErrDuplicate    = errors.New("essay already evaluated")
	ErrNoSource     = errors.New("essay has no archived source document")
	ErrInvalidInput = errors.New("invalid essay input")
)

// MapHTTPStatus maps essay domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoSource) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
