package anomaly

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindAbsent     = "absent"
	KindLate       = "late"
	KindOvertime   = "overtime"
	KindMissingOut = "missing_out"
)

// Record is one detected attendance anomaly. Identity is
// (user_id, kind, anchor_time): re-running detection over the same window
// must not produce a second row.
type Record struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     string    `gorm:"column:user_id;type:varchar(50);not null;uniqueIndex:uq_anomaly_identity,priority:1"`
	Kind       string    `gorm:"column:kind;type:varchar(12);not null;uniqueIndex:uq_anomaly_identity,priority:2"`
	AnchorTime time.Time `gorm:"column:anchor_time;type:timestamptz;not null;uniqueIndex:uq_anomaly_identity,priority:3"`
	// Duration is the anomaly magnitude in seconds: lateness shortfall,
	// absence length, or overtime excess.
	Duration  int64     `gorm:"column:duration;type:bigint;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "anomaly_records"
}

func ValidKind(kind string) bool {
	switch kind {
	case KindAbsent, KindLate, KindOvertime, KindMissingOut:
		return true
	default:
		return false
	}
}
