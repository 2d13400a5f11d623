package jobs

import (
	"errors"
	"net/http"
)

// Domain errors for job operations.
var (
	ErrJobNotFound   = errors.New("job not found")
	ErrEssayTooShort = errors.New("essay text is too short to evaluate")
	ErrQueueFull     = errors.New("evaluation queue is full")
	ErrInvalidInput  = errors.New("invalid submission")
)

// MapHTTPStatus maps job domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrJobNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEssayTooShort) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrQueueFull) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
