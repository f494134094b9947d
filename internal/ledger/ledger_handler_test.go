package ledger_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timeclock/internal/ledger"
	"go-timeclock/internal/ledger/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_GetSalary_SelfAndScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := ledger.NewHandler(svc)

	svc.EXPECT().
		Read(gomock.Any(), "113791012").
		Return(ledger.SalaryResponse{UserID: "113791012", Balance: 45000}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "113791012")
	c.Set("role", "employee")
	c.Request = httptest.NewRequest(http.MethodGet, "/salary", nil)
	h.GetSalary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "45000")

	// an employee asking for someone else's balance is refused before the
	// service is consulted
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("user_id", "113791012")
	c2.Set("role", "employee")
	c2.Request = httptest.NewRequest(http.MethodGet, "/salary?user_id=999", nil)
	h.GetSalary(c2)

	assert.Equal(t, http.StatusForbidden, w2.Code)
}

func TestHandler_GetSalary_ManagerReadsAnyUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := ledger.NewHandler(svc)

	svc.EXPECT().
		Read(gomock.Any(), "999").
		Return(ledger.SalaryResponse{UserID: "999", Balance: 1200}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "boss-1")
	c.Set("role", "manager")
	c.Request = httptest.NewRequest(http.MethodGet, "/salary?user_id=999", nil)
	h.GetSalary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"999\"")
}

func TestHandler_SetBase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := ledger.NewHandler(svc)

	svc.EXPECT().
		SetBase(gomock.Any(), "113791012", float64(50000)).
		Return(nil)
	svc.EXPECT().
		Read(gomock.Any(), "113791012").
		Return(ledger.SalaryResponse{UserID: "113791012", Balance: 50000}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "boss-1")
	c.Set("role", "manager")
	c.Request = httptest.NewRequest(http.MethodPost, "/salary/base",
		strings.NewReader(`{"user_id":"113791012","salary":50000}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.SetBase(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "50000")
}

func TestHandler_SetBase_RejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := ledger.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/salary/base",
		strings.NewReader(`{"salary":-3}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.SetBase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
