package accounterrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"User ID or password is incorrect",
		http.StatusUnauthorized,
	)

	ErrUserAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"An account with this user ID already exists",
		http.StatusConflict,
	)

	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"Account not found",
		http.StatusNotFound,
	)

	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"The referenced manager account does not exist",
		http.StatusBadRequest,
	)
)
