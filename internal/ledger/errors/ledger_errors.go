package ledgererrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"No salary account exists for this user",
		http.StatusNotFound,
	)

	ErrUnknownAnomalyKind = apperror.New(
		apperror.CodeInvalidInput,
		"Anomaly kind is not priceable",
		http.StatusBadRequest,
	)

	// ErrLedgerBusy means another applier holds the user's lock; the
	// caller should retry on the next drain pass.
	ErrLedgerBusy = apperror.New(
		apperror.CodeConflict,
		"Another salary application for this user is in flight, retry later",
		http.StatusConflict,
	)
)
