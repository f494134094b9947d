package replstore

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrUnavailable marks an operation that could not reach any replica.
// Callers match it with errors.Is; the wrapped message carries the
// per-replica causes.
var ErrUnavailable = errors.New("store unavailable")

// IsConnectionError splits the failure taxonomy: connection-level errors
// (replica unreachable) trigger failover, query errors (the server
// answered, the operation itself is wrong) must not, since retrying the
// same statement against the backup would just fail the same way.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	// A PgError means the server processed the statement and rejected it.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Driver messages that do not survive the error chain.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "failed to connect")
}
