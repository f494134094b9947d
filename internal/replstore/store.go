package replstore

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Op is one logical database operation. The handle it receives already
// carries the per-replica timeout context, so implementations must not
// re-bind their own context onto it.
type Op func(db *gorm.DB) error

// Store wraps a primary and a backup database that hold logically
// identical data. Writes land on the primary and are mirrored
// best-effort to the backup; reads fail over to the backup when the
// primary is unreachable. The two replicas are not reconciled after a
// partial failure: the backup is a warm standby for availability, not a
// durability guarantee.
type Store struct {
	primary *gorm.DB
	backup  *gorm.DB
	timeout time.Duration
	logger  *zap.Logger
}

func New(primary, backup *gorm.DB, timeout time.Duration, logger *zap.Logger) *Store {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		primary: primary,
		backup:  backup,
		timeout: timeout,
		logger:  logger.Named("replstore"),
	}
}

// Write applies op to the primary synchronously; the caller's result
// depends only on the primary. On primary success the identical op is
// replayed on the backup, and a mirror failure is logged, not surfaced
// and not retried.
func (s *Store) Write(ctx context.Context, op Op) error {
	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	err := op(s.primary.WithContext(pctx))
	cancel()
	if err != nil {
		if IsConnectionError(err) {
			return fmt.Errorf("%w: primary write: %v", ErrUnavailable, err)
		}
		return err
	}

	// Mirror even when the caller's context is already done: the primary
	// write is committed, dropping the mirror silently would widen the
	// divergence window for no reason.
	mctx, mcancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer mcancel()
	if merr := op(s.backup.WithContext(mctx)); merr != nil {
		s.logger.Warn("backup mirror failed", zap.Error(merr))
	}
	return nil
}

// Read runs op against the primary and, on a connection-level failure
// only, retries the identical op against the backup. The failover is
// transparent: the caller sees the backup's result as if it came from
// the primary.
func (s *Store) Read(ctx context.Context, op Op) error {
	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	err := op(s.primary.WithContext(pctx))
	cancel()
	if err == nil || !IsConnectionError(err) {
		return err
	}

	s.logger.Warn("primary read failed, failing over to backup", zap.Error(err))

	bctx, bcancel := context.WithTimeout(ctx, s.timeout)
	defer bcancel()
	berr := op(s.backup.WithContext(bctx))
	if berr == nil || !IsConnectionError(berr) {
		return berr
	}
	return fmt.Errorf("%w: primary: %v; backup: %v", ErrUnavailable, err, berr)
}
