package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func sampleAlert() Alert {
	return Alert{
		ManagerID:  "boss-1",
		UserID:     "113791012",
		Kind:       "late",
		AnchorTime: time.Date(2025, 6, 2, 9, 40, 0, 0, time.UTC),
		Duration:   2100,
		DetectedAt: time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
	}
}

func TestService_DeliverRetainsLatest(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb, nil)

	alert := sampleAlert()
	payload, _ := json.Marshal(alert)
	mock.ExpectSet("warning:boss-1:113791012", payload, 0).SetVal("OK")

	assert.NoError(t, svc.Deliver(ctx, alert))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ListForManager(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb, nil)

	alert := sampleAlert()
	payload, _ := json.Marshal(alert)

	mock.ExpectScan(0, "warning:boss-1:*", 50).
		SetVal([]string{"warning:boss-1:113791012"}, 0)
	mock.ExpectGet("warning:boss-1:113791012").SetVal(string(payload))

	alerts, err := svc.ListForManager(ctx, "boss-1")
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, alert, alerts[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ListForManager_Empty(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb, nil)

	mock.ExpectScan(0, "warning:boss-2:*", 50).SetVal([]string{}, 0)

	alerts, err := svc.ListForManager(ctx, "boss-2")
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}
