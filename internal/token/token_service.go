package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	tokenerrors "go-timeclock/internal/token/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ValidationStatus is the three-way result of an access token check.
// Expired is distinct from Invalid so callers can refresh instead of
// forcing a new login.
type ValidationStatus string

const (
	StatusValid   ValidationStatus = "Valid"
	StatusExpired ValidationStatus = "Expired"
	StatusInvalid ValidationStatus = "Invalid"
)

//go:generate mockgen -source=token_service.go -destination=mock/token_service_mock.go -package=mock
type Service interface {
	Issue(ctx context.Context, userID string) (AuthToken, error)
	Validate(ctx context.Context, accessToken, userID string) (ValidationStatus, error)
	Refresh(ctx context.Context, refreshToken, userID string) (AuthToken, error)
}

type service struct {
	repo   Repository
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, ttl time.Duration, logger *zap.Logger) Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	l := zap.NewNop()
	if logger != nil {
		l = logger.Named("token.service")
	}
	return &service{repo: repo, ttl: ttl, now: time.Now, logger: l}
}

func (s *service) Issue(ctx context.Context, userID string) (AuthToken, error) {
	if userID == "" {
		return AuthToken{}, tokenerrors.ErrInvalidUserID
	}

	pair, err := s.newPair(userID)
	if err != nil {
		return AuthToken{}, err
	}

	if err := s.repo.Upsert(ctx, &pair); err != nil {
		s.logger.Error("issue token persist failed", zap.String("user_id", userID), zap.Error(err))
		return AuthToken{}, err
	}

	s.logger.Info("token pair issued", zap.String("user_id", userID))
	return pair, nil
}

func (s *service) Validate(ctx context.Context, accessToken, userID string) (ValidationStatus, error) {
	if accessToken == "" || userID == "" {
		return StatusInvalid, nil
	}

	t, err := s.repo.FindByAccessToken(ctx, accessToken, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusInvalid, nil
		}
		return "", err
	}

	if s.now().Sub(t.IssuedAt) > s.ttl {
		return StatusExpired, nil
	}
	return StatusValid, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken, userID string) (AuthToken, error) {
	if refreshToken == "" || userID == "" {
		return AuthToken{}, tokenerrors.ErrInvalidRefreshToken
	}

	next, err := s.newPair(userID)
	if err != nil {
		return AuthToken{}, err
	}

	if err := s.repo.Rotate(ctx, refreshToken, userID, &next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("refresh with unknown token", zap.String("user_id", userID))
			return AuthToken{}, tokenerrors.ErrInvalidRefreshToken
		}
		s.logger.Error("token rotation failed", zap.String("user_id", userID), zap.Error(err))
		return AuthToken{}, err
	}

	s.logger.Info("token pair rotated", zap.String("user_id", userID))
	return next, nil
}

func (s *service) newPair(userID string) (AuthToken, error) {
	access, err := newOpaqueToken()
	if err != nil {
		return AuthToken{}, tokenerrors.ErrTokenGenerationFailed
	}
	refresh, err := newOpaqueToken()
	if err != nil {
		return AuthToken{}, tokenerrors.ErrTokenGenerationFailed
	}
	return AuthToken{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		IssuedAt:     s.now().UTC(),
	}, nil
}

// newOpaqueToken returns 32 random bytes hex-encoded: 64 chars, the same
// shape as the sha256 digests older clients already store.
func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
