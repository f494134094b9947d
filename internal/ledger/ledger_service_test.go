package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go-timeclock/internal/anomaly"
	ledgererrors "go-timeclock/internal/ledger/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	balances  map[string]float64
	applied   map[string]bool
	setBase   []string
	unapplied []anomaly.Record
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		balances: make(map[string]float64),
		applied:  make(map[string]bool),
	}
}

func identity(rec anomaly.Record) string {
	return fmt.Sprintf("%s|%s|%d", rec.UserID, rec.Kind, rec.AnchorTime.Unix())
}

func (f *fakeRepo) ApplyDelta(ctx context.Context, rec anomaly.Record, delta float64) error {
	key := identity(rec)
	if f.applied[key] {
		return ErrAlreadyApplied
	}
	f.applied[key] = true
	f.balances[rec.UserID] += delta
	return nil
}

func (f *fakeRepo) SetBase(ctx context.Context, userID string, amount float64) error {
	f.balances[userID] = amount
	f.setBase = append(f.setBase, userID)
	return nil
}

func (f *fakeRepo) GetAccount(ctx context.Context, userID string) (*SalaryAccount, error) {
	bal, ok := f.balances[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &SalaryAccount{UserID: userID, Balance: bal, UpdatedAt: time.Unix(1748768400, 0).UTC()}, nil
}

func (f *fakeRepo) ListUnapplied(ctx context.Context, limit int) ([]anomaly.Record, error) {
	if len(f.unapplied) > limit {
		return f.unapplied[:limit], nil
	}
	return f.unapplied, nil
}

var testPricing = Pricing{
	RatePerMinute:      10,
	AbsentPenalty:      800,
	OvertimeMultiplier: 2,
}

func anchor() time.Time {
	return time.Date(2025, 6, 2, 9, 40, 0, 0, time.UTC)
}

func TestPricing_Delta(t *testing.T) {
	cases := []struct {
		name     string
		kind     string
		duration int64
		want     float64
	}{
		{"late 35 minutes", anomaly.KindLate, 2100, -350},
		{"absent flat penalty", anomaly.KindAbsent, 28800, -800},
		{"overtime hour", anomaly.KindOvertime, 3600, 1200},
		{"missing out priced as overtime", anomaly.KindMissingOut, 3600, 1200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := testPricing.Delta(anomaly.Record{Kind: tc.kind, Duration: tc.duration})
			assert.NoError(t, err)
			assert.InDelta(t, tc.want, got, 0.001)
		})
	}

	_, err := testPricing.Delta(anomaly.Record{Kind: "vacation"})
	assert.ErrorIs(t, err, ledgererrors.ErrUnknownAnomalyKind)
}

func TestService_ApplyTwiceAdjustsOnce(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo()
	svc := NewService(repo, rdb, testPricing, nil)

	rec := anomaly.Record{
		UserID:     "113791012",
		Kind:       anomaly.KindLate,
		AnchorTime: anchor(),
		Duration:   2100,
	}

	lockKey := fmt.Sprintf(lockKeyFmt, rec.UserID)
	cacheKey := fmt.Sprintf(salaryKeyFmt, rec.UserID)

	mock.ExpectSetNX(lockKey, "1", lockTTL).SetVal(true)
	mock.ExpectDel(cacheKey).SetVal(1)
	mock.ExpectDel(lockKey).SetVal(1)

	applied, err := svc.Apply(ctx, rec)
	assert.NoError(t, err)
	assert.True(t, applied)
	assert.InDelta(t, -350, repo.balances["113791012"], 0.001)

	// same identity again: no-op success, balance untouched
	mock.ExpectSetNX(lockKey, "1", lockTTL).SetVal(true)
	mock.ExpectDel(lockKey).SetVal(1)

	applied, err = svc.Apply(ctx, rec)
	assert.NoError(t, err)
	assert.False(t, applied)
	assert.InDelta(t, -350, repo.balances["113791012"], 0.001)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Apply_LockHeldElsewhere(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo()
	svc := NewService(repo, rdb, testPricing, nil)

	rec := anomaly.Record{
		UserID:     "113791012",
		Kind:       anomaly.KindAbsent,
		AnchorTime: anchor(),
		Duration:   28800,
	}

	mock.ExpectSetNX(fmt.Sprintf(lockKeyFmt, rec.UserID), "1", lockTTL).SetVal(false)

	_, err := svc.Apply(ctx, rec)
	assert.ErrorIs(t, err, ledgererrors.ErrLedgerBusy)
	assert.Empty(t, repo.applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Read_CacheMissThenHit(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo()
	repo.balances["113791012"] = 1234.5
	svc := NewService(repo, rdb, testPricing, nil)

	cacheKey := fmt.Sprintf(salaryKeyFmt, "113791012")
	want := SalaryResponse{UserID: "113791012", Balance: 1234.5, UpdatedAt: 1748768400}
	payload, _ := json.Marshal(want)

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSet(cacheKey, payload, cacheTTL).SetVal("OK")

	resp, err := svc.Read(ctx, "113791012")
	assert.NoError(t, err)
	assert.Equal(t, want, resp)

	// warm cache serves the projection without touching the store
	repo.balances["113791012"] = 9999
	mock.ExpectGet(cacheKey).SetVal(string(payload))

	resp, err = svc.Read(ctx, "113791012")
	assert.NoError(t, err)
	assert.Equal(t, want, resp)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Read_UnknownUser(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	svc := NewService(newFakeRepo(), rdb, testPricing, nil)

	mock.ExpectGet(fmt.Sprintf(salaryKeyFmt, "ghost")).RedisNil()

	_, err := svc.Read(ctx, "ghost")
	assert.ErrorIs(t, err, ledgererrors.ErrSalaryNotFound)
}

func TestService_Drain(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo()
	svc := NewService(repo, rdb, testPricing, nil)

	fresh := anomaly.Record{UserID: "113791012", Kind: anomaly.KindLate, AnchorTime: anchor(), Duration: 2100}
	stale := anomaly.Record{UserID: "999", Kind: anomaly.KindAbsent, AnchorTime: anchor(), Duration: 28800}
	repo.unapplied = []anomaly.Record{fresh, stale}
	repo.applied[identity(stale)] = true

	mock.ExpectSetNX(fmt.Sprintf(lockKeyFmt, "113791012"), "1", lockTTL).SetVal(true)
	mock.ExpectDel(fmt.Sprintf(salaryKeyFmt, "113791012")).SetVal(1)
	mock.ExpectDel(fmt.Sprintf(lockKeyFmt, "113791012")).SetVal(1)
	mock.ExpectSetNX(fmt.Sprintf(lockKeyFmt, "999"), "1", lockTTL).SetVal(true)
	mock.ExpectDel(fmt.Sprintf(lockKeyFmt, "999")).SetVal(1)

	sum, err := svc.Drain(ctx, 100)
	assert.NoError(t, err)
	assert.Equal(t, 2, sum.Listed)
	assert.Equal(t, 1, sum.Applied)
	assert.Equal(t, 1, sum.Duplicates)
	assert.Equal(t, 0, sum.Errors)
	assert.InDelta(t, -350, repo.balances["113791012"], 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetBaseOverwritesAndInvalidates(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo()
	repo.balances["113791012"] = 100
	svc := NewService(repo, rdb, testPricing, nil)

	mock.ExpectDel(fmt.Sprintf(salaryKeyFmt, "113791012")).SetVal(1)

	err := svc.SetBase(ctx, "113791012", 50000)
	assert.NoError(t, err)
	assert.InDelta(t, 50000, repo.balances["113791012"], 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
