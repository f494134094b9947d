package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-timeclock/internal/anomaly"
	ledgererrors "go-timeclock/internal/ledger/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	lockTTL      = 10 * time.Second
	cacheTTL     = 5 * time.Minute
	lockKeyFmt   = "ledger:lock:%s"
	salaryKeyFmt = "ledger:salary:%s"
)

// Pricing converts anomaly durations into salary deltas. All three values
// come from configuration.
type Pricing struct {
	RatePerMinute      float64
	AbsentPenalty      float64
	OvertimeMultiplier float64
}

type DrainSummary struct {
	Listed     int
	Applied    int
	Duplicates int
	Errors     int
}

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	// Apply adjusts the user's balance for rec exactly once. The returned
	// bool reports whether this call actually changed the balance; a
	// previously applied anomaly is a no-op success.
	Apply(ctx context.Context, rec anomaly.Record) (bool, error)
	// Drain applies every unapplied anomaly, isolating per-anomaly
	// failures.
	Drain(ctx context.Context, batchSize int) (DrainSummary, error)
	Read(ctx context.Context, userID string) (SalaryResponse, error)
	SetBase(ctx context.Context, userID string, amount float64) error
}

type service struct {
	repo    Repository
	rdb     redis.UniversalClient
	pricing Pricing
	sf      singleflight.Group
	logger  *zap.Logger
}

func NewService(repo Repository, rdb redis.UniversalClient, pricing Pricing, logger *zap.Logger) Service {
	l := zap.NewNop()
	if logger != nil {
		l = logger.Named("ledger.service")
	}
	return &service{repo: repo, rdb: rdb, pricing: pricing, logger: l}
}

// Delta prices an anomaly: lateness and absence deduct, overtime (including
// an unpaired shift overrun) pays out at the multiplied rate.
func (p Pricing) Delta(rec anomaly.Record) (float64, error) {
	minutes := float64(rec.Duration) / 60.0
	switch rec.Kind {
	case anomaly.KindLate:
		return -p.RatePerMinute * minutes, nil
	case anomaly.KindAbsent:
		return -p.AbsentPenalty, nil
	case anomaly.KindOvertime, anomaly.KindMissingOut:
		return p.RatePerMinute * p.OvertimeMultiplier * minutes, nil
	default:
		return 0, ledgererrors.ErrUnknownAnomalyKind
	}
}

func (s *service) Apply(ctx context.Context, rec anomaly.Record) (bool, error) {
	delta, err := s.pricing.Delta(rec)
	if err != nil {
		return false, err
	}

	// Per-user lock serializes concurrent appliers; the DB constraint
	// still backstops exactly-once if the lock expires mid-apply.
	lockKey := fmt.Sprintf(lockKeyFmt, rec.UserID)
	acquired, err := s.rdb.SetNX(ctx, lockKey, "1", lockTTL).Result()
	if err != nil {
		return false, err
	}
	if !acquired {
		return false, ledgererrors.ErrLedgerBusy
	}
	defer func() {
		if err := s.rdb.Del(context.WithoutCancel(ctx), lockKey).Err(); err != nil {
			s.logger.Warn("release ledger lock failed", zap.String("user_id", rec.UserID), zap.Error(err))
		}
	}()

	if err := s.repo.ApplyDelta(ctx, rec, delta); err != nil {
		if errors.Is(err, ErrAlreadyApplied) {
			s.logger.Info("anomaly already applied, skipping",
				zap.String("user_id", rec.UserID),
				zap.String("kind", rec.Kind),
				zap.Time("anchor_time", rec.AnchorTime))
			return false, nil
		}
		return false, err
	}

	s.invalidate(ctx, rec.UserID)
	s.logger.Info("salary adjusted",
		zap.String("user_id", rec.UserID),
		zap.String("kind", rec.Kind),
		zap.Float64("delta", delta))
	return true, nil
}

func (s *service) Drain(ctx context.Context, batchSize int) (DrainSummary, error) {
	var sum DrainSummary

	if batchSize <= 0 {
		batchSize = 100
	}
	recs, err := s.repo.ListUnapplied(ctx, batchSize)
	if err != nil {
		return sum, err
	}
	sum.Listed = len(recs)

	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		applied, err := s.Apply(ctx, rec)
		switch {
		case err != nil:
			sum.Errors++
			s.logger.Error("drain apply failed",
				zap.String("user_id", rec.UserID),
				zap.String("kind", rec.Kind),
				zap.Error(err))
		case applied:
			sum.Applied++
		default:
			sum.Duplicates++
		}
	}

	s.logger.Info("ledger drain finished",
		zap.Int("listed", sum.Listed),
		zap.Int("applied", sum.Applied),
		zap.Int("duplicates", sum.Duplicates),
		zap.Int("errors", sum.Errors))
	return sum, nil
}

func (s *service) Read(ctx context.Context, userID string) (SalaryResponse, error) {
	cacheKey := fmt.Sprintf(salaryKeyFmt, userID)
	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var resp SalaryResponse
		if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
			return resp, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("salary cache read failed", zap.String("user_id", userID), zap.Error(err))
	}

	v, err, _ := s.sf.Do(userID, func() (any, error) {
		acc, err := s.repo.GetAccount(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return SalaryResponse{}, ledgererrors.ErrSalaryNotFound
			}
			return SalaryResponse{}, err
		}

		resp := SalaryResponse{
			UserID:    acc.UserID,
			Balance:   acc.Balance,
			UpdatedAt: acc.UpdatedAt.Unix(),
		}
		if payload, jsonErr := json.Marshal(resp); jsonErr == nil {
			if cacheErr := s.rdb.Set(ctx, cacheKey, payload, cacheTTL).Err(); cacheErr != nil {
				s.logger.Warn("salary cache write failed", zap.String("user_id", userID), zap.Error(cacheErr))
			}
		}
		return resp, nil
	})
	if err != nil {
		return SalaryResponse{}, err
	}
	return v.(SalaryResponse), nil
}

func (s *service) SetBase(ctx context.Context, userID string, amount float64) error {
	if err := s.repo.SetBase(ctx, userID, amount); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	s.logger.Info("base salary set", zap.String("user_id", userID), zap.Float64("amount", amount))
	return nil
}

func (s *service) invalidate(ctx context.Context, userID string) {
	key := fmt.Sprintf(salaryKeyFmt, userID)
	if err := s.rdb.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
		s.logger.Warn("salary cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
