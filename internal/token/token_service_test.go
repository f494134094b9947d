package token

import (
	"context"
	"testing"
	"time"

	tokenerrors "go-timeclock/internal/token/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type memoryRepo struct {
	byUser map[string]AuthToken
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byUser: make(map[string]AuthToken)}
}

func (m *memoryRepo) Upsert(ctx context.Context, t *AuthToken) error {
	m.byUser[t.UserID] = *t
	return nil
}

func (m *memoryRepo) FindByAccessToken(ctx context.Context, accessToken, userID string) (*AuthToken, error) {
	t, ok := m.byUser[userID]
	if !ok || t.AccessToken != accessToken {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (m *memoryRepo) Rotate(ctx context.Context, refreshToken, userID string, next *AuthToken) error {
	t, ok := m.byUser[userID]
	if !ok || t.RefreshToken != refreshToken {
		return gorm.ErrRecordNotFound
	}
	m.byUser[userID] = *next
	return nil
}

func newTestService(repo Repository, now *time.Time) *service {
	return &service{
		repo:   repo,
		ttl:    time.Hour,
		now:    func() time.Time { return *now },
		logger: zap.NewNop(),
	}
}

func TestService_ValidateTTLBoundaries(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &now)

	pair, err := svc.Issue(ctx, "113791012")
	assert.NoError(t, err)
	assert.Len(t, pair.AccessToken, 64)
	assert.Len(t, pair.RefreshToken, 64)

	now = pair.IssuedAt.Add(3599 * time.Second)
	status, err := svc.Validate(ctx, pair.AccessToken, "113791012")
	assert.NoError(t, err)
	assert.Equal(t, StatusValid, status)

	now = pair.IssuedAt.Add(3601 * time.Second)
	status, err = svc.Validate(ctx, pair.AccessToken, "113791012")
	assert.NoError(t, err)
	assert.Equal(t, StatusExpired, status)
}

func TestService_ValidateUnknownToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(newMemoryRepo(), &now)

	status, err := svc.Validate(ctx, "deadbeef", "113791012")
	assert.NoError(t, err)
	assert.Equal(t, StatusInvalid, status)
}

func TestService_RefreshRotatesSingleUse(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &now)

	old, err := svc.Issue(ctx, "113791012")
	assert.NoError(t, err)

	now = now.Add(30 * time.Minute)
	next, err := svc.Refresh(ctx, old.RefreshToken, "113791012")
	assert.NoError(t, err)
	assert.NotEqual(t, old.AccessToken, next.AccessToken)
	assert.NotEqual(t, old.RefreshToken, next.RefreshToken)
	assert.Equal(t, now.UTC(), next.IssuedAt)

	// previous access token no longer validates
	status, err := svc.Validate(ctx, old.AccessToken, "113791012")
	assert.NoError(t, err)
	assert.Equal(t, StatusInvalid, status)

	// previous refresh token is single-use
	_, err = svc.Refresh(ctx, old.RefreshToken, "113791012")
	assert.ErrorIs(t, err, tokenerrors.ErrInvalidRefreshToken)

	// the new one still works
	_, err = svc.Refresh(ctx, next.RefreshToken, "113791012")
	assert.NoError(t, err)
}

func TestService_RefreshWrongUser(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	now := time.Now()
	svc := newTestService(repo, &now)

	pair, err := svc.Issue(ctx, "113791012")
	assert.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.RefreshToken, "999")
	assert.ErrorIs(t, err, tokenerrors.ErrInvalidRefreshToken)
}
