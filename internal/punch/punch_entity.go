package punch

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindIn  = "in"
	KindOut = "out"
)

// ClockEvent is a single immutable punch. Rows are append-only: corrections
// happen downstream in reconciliation, never by editing history.
type ClockEvent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    string    `gorm:"column:user_id;type:varchar(50);not null;index:idx_clock_events_user_ts,priority:1"`
	Kind      string    `gorm:"column:kind;type:varchar(3);not null"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamptz;not null;index:idx_clock_events_user_ts,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ClockEvent) TableName() string {
	return "clock_events"
}
