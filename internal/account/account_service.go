package account

import (
	"context"
	"errors"

	accounterrors "go-timeclock/internal/account/errors"
	"go-timeclock/internal/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=account_service.go -destination=mock/account_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (SessionResponse, error)
	// Get resolves an account for authorization decisions (role, manager link).
	Get(ctx context.Context, userID string) (AccountResponse, error)
}

type service struct {
	repo   Repository
	tokens token.Service
	logger *zap.Logger
}

func NewService(repo Repository, tokens token.Service, logger *zap.Logger) Service {
	l := zap.NewNop()
	if logger != nil {
		l = logger.Named("account.service")
	}
	return &service{repo: repo, tokens: tokens, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (SessionResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return SessionResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}

	// Employees report to an existing manager account.
	if req.ManagerID != nil && *req.ManagerID != "" {
		mgr, err := s.repo.FindByUserID(ctx, *req.ManagerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return SessionResponse{}, accounterrors.ErrManagerNotFound
			}
			return SessionResponse{}, err
		}
		if mgr.Role != RoleManager {
			return SessionResponse{}, accounterrors.ErrManagerNotFound
		}
	}

	acc := &EmployeeAccount{
		UserID:       req.UserID,
		Name:         req.Name,
		PasswordHash: string(hashed),
		Role:         role,
		ManagerID:    req.ManagerID,
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		return SessionResponse{}, mapCreateError(err)
	}

	pair, err := s.tokens.Issue(ctx, acc.UserID)
	if err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("account registered",
		zap.String("user_id", acc.UserID),
		zap.String("role", acc.Role))
	return mapToSession(*acc, pair), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (SessionResponse, error) {
	acc, err := s.repo.FindByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, accounterrors.ErrInvalidCredentials
		}
		return SessionResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected", zap.String("user_id", req.UserID))
		return SessionResponse{}, accounterrors.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(ctx, acc.UserID)
	if err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("login succeeded", zap.String("user_id", acc.UserID))
	return mapToSession(*acc, pair), nil
}

func (s *service) Get(ctx context.Context, userID string) (AccountResponse, error) {
	acc, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccountResponse{}, accounterrors.ErrAccountNotFound
		}
		return AccountResponse{}, err
	}
	return mapToAccount(*acc), nil
}

func mapToAccount(a EmployeeAccount) AccountResponse {
	return AccountResponse{
		UserID:    a.UserID,
		Name:      a.Name,
		Role:      a.Role,
		ManagerID: a.ManagerID,
	}
}

func mapToSession(a EmployeeAccount, pair token.AuthToken) SessionResponse {
	return SessionResponse{
		Account:      mapToAccount(a),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		IssuedAt:     pair.IssuedAt.Unix(),
	}
}
