package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrStoreUnavailable = New(
		CodeStoreUnavailable,
		"Both primary and backup stores are unreachable, retry later",
		http.StatusServiceUnavailable,
	)
)

// RequiredField builds the validation error for a missing field
func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

// InvalidField builds the validation error for a malformed field. An
// optional reason replaces the generic suffix.
func InvalidField(field string, reason ...string) *AppError {
	msg := fmt.Sprintf("%s is invalid", field)
	if len(reason) > 0 {
		msg = fmt.Sprintf("%s %s", field, reason[0])
	}
	return New(CodeInvalidInput, msg, http.StatusBadRequest)
}
