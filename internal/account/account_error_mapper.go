package account

import (
	"errors"
	"strings"

	accounterrors "go-timeclock/internal/account/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func isDuplicateAccount(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "employee_accounts")
}

func mapCreateError(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateAccount(err) {
		return accounterrors.ErrUserAlreadyRegistered
	}
	return err
}
