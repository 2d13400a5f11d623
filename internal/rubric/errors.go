package rubric

import (
	"errors"
	"net/http"
)

// Domain errors for rubric operations.
var (
	ErrNotFound     = errors.New("rubric prompt not found")
	ErrDuplicate    = errors.New("rubric prompt name already exists")
	ErrInvalidStage = errors.New("stage must be a rubric criterion or synthesis")
)

// MapHTTPStatus maps rubric domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStage) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
