package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const warningKeyFmt = "warning:%s:%s"

// Alert is the manager-facing view of a detected anomaly.
type Alert struct {
	ManagerID  string    `json:"manager_id"`
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"`
	AnchorTime time.Time `json:"anchor_time"`
	Duration   int64     `json:"duration"`
	DetectedAt time.Time `json:"detected_at"`
}

//go:generate mockgen -source=notify_service.go -destination=mock/notify_service_mock.go -package=mock
type Service interface {
	// Deliver retains the latest alert on the manager/user channel.
	// Redelivery of the same alert overwrites with identical content, so
	// at-least-once upstream is safe.
	Deliver(ctx context.Context, alert Alert) error
	// ListForManager returns the retained alert of every channel the
	// manager owns, one per direct report with a standing warning.
	ListForManager(ctx context.Context, managerID string) ([]Alert, error)
}

type service struct {
	rdb    redis.UniversalClient
	logger *zap.Logger
}

func NewService(rdb redis.UniversalClient, logger *zap.Logger) Service {
	l := zap.NewNop()
	if logger != nil {
		l = logger.Named("notify.service")
	}
	return &service{rdb: rdb, logger: l}
}

func (s *service) Deliver(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	key := fmt.Sprintf(warningKeyFmt, alert.ManagerID, alert.UserID)
	if err := s.rdb.Set(ctx, key, payload, 0).Err(); err != nil {
		return err
	}

	s.logger.Info("alert delivered",
		zap.String("manager_id", alert.ManagerID),
		zap.String("user_id", alert.UserID),
		zap.String("kind", alert.Kind))
	return nil
}

func (s *service) ListForManager(ctx context.Context, managerID string) ([]Alert, error) {
	pattern := fmt.Sprintf(warningKeyFmt, managerID, "*")

	var alerts []Alert
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, 50).Result()
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			raw, err := s.rdb.Get(ctx, key).Result()
			if err != nil {
				// channel expired between scan and get
				continue
			}
			var alert Alert
			if err := json.Unmarshal([]byte(raw), &alert); err != nil {
				s.logger.Warn("malformed retained alert", zap.String("key", key), zap.Error(err))
				continue
			}
			alerts = append(alerts, alert)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}
	return alerts, nil
}
