package events

import "time"

const AnomalyDetectedTopic = "timeclock.anomaly.detected.v1"

type AnomalyDetectedEvent struct {
	EventType  string    `json:"event_type"`
	AnomalyID  string    `json:"anomaly_id"`
	UserID     string    `json:"user_id"`
	ManagerID  string    `json:"manager_id"`
	Kind       string    `json:"kind"`
	AnchorTime time.Time `json:"anchor_time"`
	// Duration in seconds, same unit the anomaly report exposes.
	Duration   int64     `json:"duration"`
	OccurredAt time.Time `json:"occurred_at"`
}
