package punch

import (
	"context"
	"time"

	"go-timeclock/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, userID string, req RecordRequest) (ClockEventResponse, error)
	Query(ctx context.Context, actorID string, canReadAll bool, req QueryRequest) ([]ClockEventResponse, error)
	// ActiveUserIDs lists every user that has ever punched, for batch jobs.
	ActiveUserIDs(ctx context.Context) ([]string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	l := zap.NewNop()
	if logger != nil {
		l = logger.Named("punch.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, userID string, req RecordRequest) (ClockEventResponse, error) {
	if userID == "" {
		return ClockEventResponse{}, apperror.RequiredField("user_id")
	}
	if req.Kind != KindIn && req.Kind != KindOut {
		return ClockEventResponse{}, apperror.InvalidField("type", "must be 'in' or 'out'")
	}
	if req.Timestamp <= 0 {
		return ClockEventResponse{}, apperror.InvalidField("time", "must be a positive epoch timestamp")
	}

	e := &ClockEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      req.Kind,
		Timestamp: time.Unix(req.Timestamp, 0).UTC(),
	}
	if err := s.repo.Append(ctx, e); err != nil {
		s.logger.Error("append punch failed", zap.String("user_id", userID), zap.Error(err))
		return ClockEventResponse{}, err
	}

	s.logger.Info("punch recorded",
		zap.String("user_id", userID),
		zap.String("kind", e.Kind),
		zap.Time("timestamp", e.Timestamp))
	return mapToResponse(*e), nil
}

func (s *service) Query(ctx context.Context, actorID string, canReadAll bool, req QueryRequest) ([]ClockEventResponse, error) {
	target := req.UserID
	if target == "" {
		target = actorID
	}
	if target != actorID && !canReadAll {
		return nil, apperror.ErrForbidden
	}
	if req.End <= req.Start {
		return nil, apperror.InvalidField("end_time", "must be after start_time")
	}

	rows, err := s.repo.FindInWindow(ctx, target,
		time.Unix(req.Start, 0).UTC(), time.Unix(req.End, 0).UTC())
	if err != nil {
		return nil, err
	}

	res := make([]ClockEventResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) ActiveUserIDs(ctx context.Context) ([]string, error) {
	return s.repo.DistinctUserIDs(ctx)
}

func mapToResponse(e ClockEvent) ClockEventResponse {
	return ClockEventResponse{
		ID:        e.ID.String(),
		UserID:    e.UserID,
		Kind:      e.Kind,
		Timestamp: e.Timestamp.Unix(),
	}
}
