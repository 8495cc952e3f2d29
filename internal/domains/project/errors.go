package project

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrProjectNotFound = errors.New("project not found")

	// ErrEbookNotPlaceholder means the target ebook is already published
	// and cannot have a production project started against it.
	ErrEbookNotPlaceholder = errors.New("ebook is not a placeholder")

	// ErrProjectExists means the ebook already has an active project.
	ErrProjectExists = errors.New("ebook already has an active project")

	// ErrRemoteFetch is the generic kind for any external-enrichment
	// failure; the underlying cause is carried in the message.
	ErrRemoteFetch = errors.New("remote fetch failed")
)

// ToErrorCode converts an error to its API error code.
func ToErrorCode(err error) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return "VALIDATION_FAILED"
	}

	switch {
	case errors.Is(err, ErrProjectNotFound):
		return "PROJECT_NOT_FOUND"
	case errors.Is(err, ErrEbookNotPlaceholder):
		return "EBOOK_NOT_PLACEHOLDER"
	case errors.Is(err, ErrProjectExists):
		return "PROJECT_EXISTS"
	case errors.Is(err, ErrRemoteFetch):
		return "REMOTE_FETCH_FAILED"
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
	case errors.Is(err, ErrProjectNotFound):
		return 404
	case errors.Is(err, ErrEbookNotPlaceholder), errors.Is(err, ErrProjectExists):
		return 409
	case errors.Is(err, ErrRemoteFetch):
		return 502
	default:
		return 500
	}
}
