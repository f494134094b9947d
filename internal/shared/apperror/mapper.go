package apperror

import (
	"errors"
	"net/http"

	"go-timeclock/internal/replstore"
)

// HTTPError is the flattened form handlers write into the response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps any service error onto an HTTPError. Unknown errors become
// a generic 500 so internals never leak to clients.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	// Both replicas down is transient, not a rejected request: the
	// client should retry, not give up.
	if errors.Is(err, replstore.ErrUnavailable) {
		return HTTPError{
			Status:  ErrStoreUnavailable.HTTPStatus,
			Code:    ErrStoreUnavailable.Code,
			Message: ErrStoreUnavailable.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
