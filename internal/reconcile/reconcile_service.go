package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-timeclock/internal/account"
	"go-timeclock/internal/anomaly"
	"go-timeclock/internal/events"
	kafkaoutbox "go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/punch"
	"go-timeclock/internal/replstore"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RunSummary struct {
	UsersScanned        int
	AnomaliesNew        int
	AnomaliesDuplicate  int
	NotificationsQueued int
	UserErrors          int
}

//go:generate mockgen -source=reconcile_service.go -destination=mock/reconcile_service_mock.go -package=mock
type Service interface {
	// RunWindow classifies every known user over the window and persists
	// new anomalies. One user's failure never aborts the rest of the batch.
	RunWindow(ctx context.Context, w Window) (RunSummary, error)
}

type service struct {
	store       *replstore.Store
	punchRepo   punch.Repository
	anomalyRepo anomaly.Repository
	accountRepo account.Repository
	outbox      kafkaoutbox.OutboxRepository
	policy      Policy
	logger      *zap.Logger
}

func NewService(
	store *replstore.Store,
	punchRepo punch.Repository,
	anomalyRepo anomaly.Repository,
	accountRepo account.Repository,
	outbox kafkaoutbox.OutboxRepository,
	policy Policy,
	logger *zap.Logger,
) Service {
	l := zap.NewNop()
	if logger != nil {
		l = logger.Named("reconcile.service")
	}
	return &service{
		store:       store,
		punchRepo:   punchRepo,
		anomalyRepo: anomalyRepo,
		accountRepo: accountRepo,
		outbox:      outbox,
		policy:      policy,
		logger:      l,
	}
}

func (s *service) RunWindow(ctx context.Context, w Window) (RunSummary, error) {
	var sum RunSummary

	userIDs, err := s.punchRepo.DistinctUserIDs(ctx)
	if err != nil {
		return sum, err
	}

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.UsersScanned++

		if err := s.reconcileUser(ctx, w, userID, &sum); err != nil {
			sum.UserErrors++
			s.logger.Error("reconcile user failed",
				zap.String("user_id", userID),
				zap.Time("window_start", w.Start),
				zap.Error(err))
		}
	}

	s.logger.Info("reconcile window finished",
		zap.Time("window_start", w.Start),
		zap.Time("window_end", w.End),
		zap.Int("users", sum.UsersScanned),
		zap.Int("new_anomalies", sum.AnomaliesNew),
		zap.Int("duplicates", sum.AnomaliesDuplicate),
		zap.Int("notifications", sum.NotificationsQueued),
		zap.Int("errors", sum.UserErrors))
	return sum, nil
}

func (s *service) reconcileUser(ctx context.Context, w Window, userID string, sum *RunSummary) error {
	punches, err := s.punchRepo.FindInWindow(ctx, userID, w.Start, w.End)
	if err != nil {
		return err
	}

	finding, ok := Classify(w, s.policy, punches)
	if !ok {
		return nil
	}

	rec := &anomaly.Record{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       finding.Kind,
		AnchorTime: finding.AnchorTime.UTC(),
		Duration:   int64(finding.Duration.Seconds()),
	}

	managerID := s.lookupManager(ctx, userID)

	// The op replays on the backup mirror, which may disagree with the
	// primary (already holds the row, or fails mid-transaction). Only the
	// primary run's result feeds the summary; each run still makes its
	// own enqueue decision from its own insert.
	var inserted, primarySeen bool
	err = s.store.Write(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			ins, txErr := s.anomalyRepo.InsertIgnoreTx(tx, rec)
			if txErr != nil {
				return txErr
			}
			if !primarySeen {
				inserted = ins
				primarySeen = true
			}
			if !ins || managerID == "" {
				return nil
			}
			return s.enqueueNotificationTx(tx, rec, managerID)
		})
	})
	if err != nil {
		return err
	}

	if !inserted {
		sum.AnomaliesDuplicate++
		return nil
	}
	sum.AnomaliesNew++
	if managerID != "" {
		sum.NotificationsQueued++
	}
	return nil
}

// lookupManager is best-effort: an anomaly without a reachable manager is
// still persisted, it just has nobody to notify.
func (s *service) lookupManager(ctx context.Context, userID string) string {
	acc, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("manager lookup failed", zap.String("user_id", userID), zap.Error(err))
		}
		return ""
	}
	if acc.ManagerID == nil {
		return ""
	}
	return *acc.ManagerID
}

func (s *service) enqueueNotificationTx(tx *gorm.DB, rec *anomaly.Record, managerID string) error {
	payload, err := json.Marshal(events.AnomalyDetectedEvent{
		EventType:  "anomaly_detected",
		AnomalyID:  rec.ID.String(),
		UserID:     rec.UserID,
		ManagerID:  managerID,
		Kind:       rec.Kind,
		AnchorTime: rec.AnchorTime,
		Duration:   rec.Duration,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.CreateTx(tx, kafkaoutbox.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "anomaly",
		AggregateID:   rec.ID.String(),
		EventType:     "anomaly_detected",
		Topic:         events.AnomalyDetectedTopic,
		Key:           managerID + "/" + rec.UserID,
		Payload:       payload,
		Status:        kafkaoutbox.OutboxStatusPending,
	})
}
