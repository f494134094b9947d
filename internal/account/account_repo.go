package account

import (
	"context"

	"go-timeclock/internal/replstore"

	"gorm.io/gorm"
)

//go:generate mockgen -source=account_repo.go -destination=mock/account_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *EmployeeAccount) error
	FindByUserID(ctx context.Context, userID string) (*EmployeeAccount, error)
}

type repository struct {
	store *replstore.Store
}

func NewRepository(store *replstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, a *EmployeeAccount) error {
	return r.store.Write(ctx, func(db *gorm.DB) error {
		return db.Create(a).Error
	})
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*EmployeeAccount, error) {
	var a EmployeeAccount
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Where("user_id = ?", userID).First(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
