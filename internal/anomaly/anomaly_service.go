package anomaly

import (
	"context"
	"time"

	"go-timeclock/internal/shared/apperror"
)

//go:generate mockgen -source=anomaly_service.go -destination=mock/anomaly_service_mock.go -package=mock
type Service interface {
	Report(ctx context.Context, actorID string, canReadAll bool, req ReportRequest) ([]RecordResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Report(ctx context.Context, actorID string, canReadAll bool, req ReportRequest) ([]RecordResponse, error) {
	target := req.UserID
	if target == "" {
		target = actorID
	}
	if target != actorID && !canReadAll {
		return nil, apperror.ErrForbidden
	}

	rows, err := s.repo.FindByUserInWindow(ctx, target,
		time.Unix(req.Start, 0).UTC(), time.Unix(req.End, 0).UTC())
	if err != nil {
		return nil, err
	}

	res := make([]RecordResponse, len(rows))
	for i, r := range rows {
		res[i] = RecordResponse{
			ID:         r.ID.String(),
			UserID:     r.UserID,
			Kind:       r.Kind,
			AnchorTime: r.AnchorTime.Unix(),
			Duration:   r.Duration,
		}
	}
	return res, nil
}
