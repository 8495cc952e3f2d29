package artist

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrArtistNotFound = errors.New("artist not found")
)

// ToErrorCode converts an error to its API error code.
func ToErrorCode(err error) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return "VALIDATION_FAILED"
	}

	switch {
	case errors.Is(err, ErrArtistNotFound):
		return "ARTIST_NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return 422
	}

	switch {
	case errors.Is(err, ErrArtistNotFound):
		return 404
	default:
		return 500
	}
}
