package token

import (
	"context"

	"go-timeclock/internal/replstore"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=token_repo.go -destination=mock/token_repo_mock.go -package=mock
type Repository interface {
	Upsert(ctx context.Context, t *AuthToken) error
	FindByAccessToken(ctx context.Context, accessToken, userID string) (*AuthToken, error)
	// Rotate swaps the stored pair for next iff (refreshToken, userID)
	// still matches a live row. Returns gorm.ErrRecordNotFound when the
	// refresh token has already been rotated away.
	Rotate(ctx context.Context, refreshToken, userID string, next *AuthToken) error
}

type repository struct {
	store *replstore.Store
}

func NewRepository(store *replstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Upsert(ctx context.Context, t *AuthToken) error {
	return r.store.Write(ctx, func(db *gorm.DB) error {
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "issued_at"}),
		}).Create(t).Error
	})
}

func (r *repository) FindByAccessToken(ctx context.Context, accessToken, userID string) (*AuthToken, error) {
	var t AuthToken
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.
			Where("access_token = ?", accessToken).
			Where("user_id = ?", userID).
			First(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Rotate(ctx context.Context, refreshToken, userID string, next *AuthToken) error {
	return r.store.Write(ctx, func(db *gorm.DB) error {
		res := db.Model(&AuthToken{}).
			Where("refresh_token = ?", refreshToken).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"access_token":  next.AccessToken,
				"refresh_token": next.RefreshToken,
				"issued_at":     next.IssuedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
