package anomaly

import (
	"context"
	"fmt"
	"time"

	"go-timeclock/internal/replstore"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=anomaly_repo.go -destination=mock/anomaly_repo_mock.go -package=mock
type Repository interface {
	// InsertIgnoreTx appends rec unless a row with the same
	// (user_id, kind, anchor_time) already exists. Returns whether a new
	// row was written. Runs on the caller's transaction handle so the
	// caller can atomically pair the insert with an outbox enqueue.
	InsertIgnoreTx(tx *gorm.DB, rec *Record) (bool, error)
	FindByUserInWindow(ctx context.Context, userID string, start, end time.Time) ([]Record, error)
}

type repository struct {
	store *replstore.Store
}

func NewRepository(store *replstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) InsertIgnoreTx(tx *gorm.DB, rec *Record) (bool, error) {
	// kind is part of the row identity; an unknown one would mint
	// records nothing downstream can price
	if !ValidKind(rec.Kind) {
		return false, fmt.Errorf("unknown anomaly kind %q", rec.Kind)
	}

	res := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "kind"}, {Name: "anchor_time"},
		},
		DoNothing: true,
	}).Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindByUserInWindow(ctx context.Context, userID string, start, end time.Time) ([]Record, error) {
	var rows []Record
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.
			Where("user_id = ?", userID).
			Where("anchor_time >= ?", start).
			Where("anchor_time < ?", end).
			Order("anchor_time DESC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
