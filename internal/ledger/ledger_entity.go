package ledger

import (
	"time"

	"github.com/google/uuid"
)

type SalaryAccount struct {
	UserID    string    `gorm:"column:user_id;type:varchar(50);primaryKey"`
	Balance   float64   `gorm:"column:balance;type:numeric(14,2);not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SalaryAccount) TableName() string {
	return "salary_accounts"
}

// AppliedAnomaly is the append-only application log. The unique index over
// (user_id, kind, anchor_time) is what makes Apply exactly-once: a second
// attempt for the same anomaly identity hits the constraint instead of
// mutating the balance again.
type AppliedAnomaly struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID     string    `gorm:"column:user_id;type:varchar(50);not null;uniqueIndex:uq_applied_identity,priority:1"`
	Kind       string    `gorm:"column:kind;type:varchar(12);not null;uniqueIndex:uq_applied_identity,priority:2"`
	AnchorTime time.Time `gorm:"column:anchor_time;type:timestamptz;not null;uniqueIndex:uq_applied_identity,priority:3"`
	Delta      float64   `gorm:"column:delta;type:numeric(14,2);not null"`
	AppliedAt  time.Time `gorm:"column:applied_at;type:timestamptz;not null"`
}

func (AppliedAnomaly) TableName() string {
	return "applied_anomalies"
}
