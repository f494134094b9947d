package ledger

import (
	"context"
	"errors"
	"time"

	"go-timeclock/internal/anomaly"
	"go-timeclock/internal/replstore"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadyApplied reports that the anomaly identity is already in the
// application log. Callers treat it as a no-op success.
var ErrAlreadyApplied = errors.New("anomaly already applied")

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	// ApplyDelta records the anomaly in the application log and adjusts
	// the balance in one primary transaction. Returns ErrAlreadyApplied
	// without touching the balance when the identity was applied before.
	ApplyDelta(ctx context.Context, rec anomaly.Record, delta float64) error
	SetBase(ctx context.Context, userID string, amount float64) error
	GetAccount(ctx context.Context, userID string) (*SalaryAccount, error)
	// ListUnapplied returns anomaly rows with no matching application log
	// entry, oldest first.
	ListUnapplied(ctx context.Context, limit int) ([]anomaly.Record, error)
}

type repository struct {
	store *replstore.Store
}

func NewRepository(store *replstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) ApplyDelta(ctx context.Context, rec anomaly.Record, delta float64) error {
	return r.store.Write(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			res := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "user_id"}, {Name: "kind"}, {Name: "anchor_time"},
				},
				DoNothing: true,
			}).Create(&AppliedAnomaly{
				ID:         uuid.New(),
				UserID:     rec.UserID,
				Kind:       rec.Kind,
				AnchorTime: rec.AnchorTime,
				Delta:      delta,
				AppliedAt:  time.Now().UTC(),
			})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrAlreadyApplied
			}

			// Accounts spring into existence at a zero base on first apply.
			return tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"balance":    gorm.Expr("salary_accounts.balance + EXCLUDED.balance"),
					"updated_at": gorm.Expr("NOW()"),
				}),
			}).Create(&SalaryAccount{
				UserID:  rec.UserID,
				Balance: delta,
			}).Error
		})
	})
}

func (r *repository) SetBase(ctx context.Context, userID string, amount float64) error {
	return r.store.Write(ctx, func(db *gorm.DB) error {
		return db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance":    amount,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&SalaryAccount{
			UserID:  userID,
			Balance: amount,
		}).Error
	})
}

func (r *repository) GetAccount(ctx context.Context, userID string) (*SalaryAccount, error) {
	var acc SalaryAccount
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Where("user_id = ?", userID).First(&acc).Error
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *repository) ListUnapplied(ctx context.Context, limit int) ([]anomaly.Record, error) {
	var rows []anomaly.Record
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Table("anomaly_records AS a").
			Select("a.*").
			Joins(`LEFT JOIN applied_anomalies ap
				ON ap.user_id = a.user_id
				AND ap.kind = a.kind
				AND ap.anchor_time = a.anchor_time`).
			Where("ap.id IS NULL").
			Order("a.created_at ASC").
			Limit(limit).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
