package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidLogin masks the underlying cause: an unknown identifier
	// and a wrong password look identical to the caller, so login attempts
	// cannot be used to probe which accounts exist.
	ErrInvalidLogin = errors.New("invalid identifier or password")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return "SESSION_NOT_FOUND"
	case errors.Is(err, ErrInvalidLogin):
		return "INVALID_LOGIN"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return 404
	case errors.Is(err, ErrInvalidLogin):
		return 401
	default:
		return 500
	}
}
