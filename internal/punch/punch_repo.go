package punch

import (
	"context"
	"time"

	"go-timeclock/internal/replstore"

	"gorm.io/gorm"
)

//go:generate mockgen -source=punch_repo.go -destination=mock/punch_repo_mock.go -package=mock
type Repository interface {
	Append(ctx context.Context, e *ClockEvent) error
	// FindInWindow returns events with start <= timestamp < end, newest first.
	FindInWindow(ctx context.Context, userID string, start, end time.Time) ([]ClockEvent, error)
	DistinctUserIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	store *replstore.Store
}

func NewRepository(store *replstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Append(ctx context.Context, e *ClockEvent) error {
	return r.store.Write(ctx, func(db *gorm.DB) error {
		return db.Create(e).Error
	})
}

func (r *repository) FindInWindow(ctx context.Context, userID string, start, end time.Time) ([]ClockEvent, error) {
	var rows []ClockEvent
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.
			Where("user_id = ?", userID).
			Where("timestamp >= ?", start).
			Where("timestamp < ?", end).
			Order("timestamp DESC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) DistinctUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Model(&ClockEvent{}).
			Distinct("user_id").
			Order("user_id").
			Pluck("user_id", &ids).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
