package punch_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timeclock/internal/punch"
	"go-timeclock/internal/punch/mock"
	"go-timeclock/internal/replstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_Record(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := punch.NewHandler(svc)

	svc.EXPECT().
		Record(gomock.Any(), "113791012", punch.RecordRequest{Kind: "in", Timestamp: 1748768400}).
		Return(punch.ClockEventResponse{
			ID:        "6a7db80e-8a2e-4f06-9dd7-b503fa2b4e3a",
			UserID:    "113791012",
			Kind:      "in",
			Timestamp: 1748768400,
		}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "113791012")
	c.Request = httptest.NewRequest(http.MethodPost, "/clock/punch",
		strings.NewReader(`{"type":"in","time":1748768400}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Record(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "113791012")
}

func TestHandler_Record_RejectsUnknownKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := punch.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "113791012")
	c.Request = httptest.NewRequest(http.MethodPost, "/clock/punch",
		strings.NewReader(`{"type":"lunch","time":1748768400}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Record(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Record_BothReplicasDownIs503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := punch.NewHandler(svc)

	svc.EXPECT().
		Record(gomock.Any(), "113791012", gomock.Any()).
		Return(punch.ClockEventResponse{},
			fmt.Errorf("%w: primary: dial refused; backup: dial refused", replstore.ErrUnavailable))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "113791012")
	c.Request = httptest.NewRequest(http.MethodPost, "/clock/punch",
		strings.NewReader(`{"type":"in","time":1748768400}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Record(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "STORE_UNAVAILABLE")
}

func TestHandler_Query(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := punch.NewHandler(svc)

	svc.EXPECT().
		Query(gomock.Any(), "boss-1", true, punch.QueryRequest{UserID: "113791012", Start: 100, End: 200}).
		Return([]punch.ClockEventResponse{
			{UserID: "113791012", Kind: "in", Timestamp: 150},
		}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "boss-1")
	c.Set("role", "manager")
	c.Request = httptest.NewRequest(http.MethodGet,
		"/clock/records?user_id=113791012&start_time=100&end_time=200", nil)
	h.Query(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"in\"")
}
