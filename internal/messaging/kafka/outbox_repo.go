package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-timeclock/internal/replstore"

	"gorm.io/gorm"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

type OutboxEvent struct {
	ID            string  `gorm:"column:id;type:uuid;primaryKey"`
	RequestID     string  `gorm:"column:request_id;type:varchar(64)"`
	AggregateType string  `gorm:"column:aggregate_type;type:varchar(50);not null"`
	AggregateID   string  `gorm:"column:aggregate_id;type:varchar(100);not null"`
	EventType     string  `gorm:"column:event_type;type:varchar(100);not null"`
	Topic         string  `gorm:"column:topic;type:varchar(200);not null"`
	// Key becomes the Kafka message key: one logical channel per
	// manager_id/user_id pair, so consumers see per-pair ordering.
	Key          string     `gorm:"column:key;type:varchar(120);not null"`
	Payload      []byte     `gorm:"column:payload;type:jsonb;not null"`
	Status       string     `gorm:"column:status;type:varchar(10);not null;default:'pending'"`
	RetryCount   int        `gorm:"column:retry_count;not null;default:0"`
	ErrorMessage *string    `gorm:"column:error_message;type:varchar(500)"`
	NextRetryAt  *time.Time `gorm:"column:next_retry_at;type:timestamptz"`
	ProcessedAt  *time.Time `gorm:"column:processed_at;type:timestamptz"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	// CreateTx enqueues on the caller's transaction handle so the business
	// write and the outbox row commit or roll back together.
	CreateTx(tx *gorm.DB, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	store *replstore.Store
}

func NewOutboxRepository(store *replstore.Store) OutboxRepository {
	return &outboxRepository{store: store}
}

func (r *outboxRepository) CreateTx(tx *gorm.DB, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	return tx.Create(&event).Error
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var events []OutboxEvent
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.
			Where("status IN ?", []string{OutboxStatusPending, OutboxStatusFailed}).
			Where("next_retry_at IS NULL OR next_retry_at <= NOW()").
			Order("created_at ASC").
			Limit(limit).
			Find(&events).Error
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.store.Write(ctx, func(db *gorm.DB) error {
		return db.Model(&OutboxEvent{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":        OutboxStatusSent,
				"processed_at":  gorm.Expr("NOW()"),
				"error_message": nil,
				"updated_at":    gorm.Expr("NOW()"),
			}).Error
	})
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.store.Write(ctx, func(db *gorm.DB) error {
		return db.Model(&OutboxEvent{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":        OutboxStatusFailed,
				"retry_count":   gorm.Expr("retry_count + 1"),
				"error_message": gorm.Expr("LEFT(?, 500)", reason),
				"next_retry_at": gorm.Expr("NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds')"),
				"updated_at":    gorm.Expr("NOW()"),
			}).Error
	})
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if event.Key == "" {
		return errors.New("outbox key is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
