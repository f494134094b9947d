package consumer

import (
	"context"
	"encoding/json"

	"go-timeclock/internal/events"
	"go-timeclock/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeAnomalyAlerts(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier notify.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.anomaly_alerts")
	log.Info("anomaly alert consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("anomaly alert consumer stopped")
				return
			}
			log.Error("fetch anomaly alert message failed", zap.Error(err))
			continue
		}

		var event events.AnomalyDetectedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// poison message: park it by committing, it will never decode
			log.Error("decode anomaly_detected event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = notifier.Deliver(ctx, notify.Alert{
			ManagerID:  event.ManagerID,
			UserID:     event.UserID,
			Kind:       event.Kind,
			AnchorTime: event.AnchorTime,
			Duration:   event.Duration,
			DetectedAt: event.OccurredAt,
		})
		if err != nil {
			// leave uncommitted so the group redelivers; Deliver is
			// overwrite-idempotent per channel
			log.Error("deliver anomaly alert failed",
				zap.String("manager_id", event.ManagerID),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit anomaly alert message failed", zap.Error(err))
			continue
		}

		log.Info("anomaly alert handled",
			zap.String("manager_id", event.ManagerID),
			zap.String("user_id", event.UserID),
			zap.String("kind", event.Kind),
		)
	}
}
