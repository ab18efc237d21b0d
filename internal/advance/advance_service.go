package advance

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	advanceerrors "dairy-erp/internal/advance/errors"
	"dairy-erp/internal/shared/apperror"
	"dairy-erp/internal/shared/contextutil"
	"dairy-erp/internal/worker"
	workererrors "dairy-erp/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WorkerFinder is the slice of the worker repository advances depend on.
type WorkerFinder interface {
	FindByID(ctx context.Context, id string) (*worker.Worker, error)
}

type Service interface {
	Create(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetAll(ctx context.Context, filter GetAdvancesFilterRequest) ([]AdvanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	workers WorkerFinder
	logger  *zap.Logger
}

func NewService(repo Repository, workers WorkerFinder, logger ...*zap.Logger) Service {
	l := zap.L().Named("advance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("advance.service")
	}
	return &service{repo: repo, workers: workers, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAmount
	}
	if !apperror.ValidPeriod(req.Year, req.Month) {
		return AdvanceResponse{}, apperror.ErrInvalidPeriod
	}
	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		return AdvanceResponse{}, workererrors.ErrInvalidWorkerID
	}

	if _, err := s.workers.FindByID(ctx, req.WorkerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdvanceResponse{}, workererrors.ErrWorkerNotFound
		}
		s.logger.Error("create advance worker lookup failed", zap.String("request_id", rid), zap.Error(err))
		return AdvanceResponse{}, err
	}

	var createdBy *string
	if uid := contextutil.GetUserID(ctx); uid != "" {
		createdBy = &uid
	}

	a := &Advance{
		ID:        uuid.New(),
		WorkerID:  workerID,
		Year:      req.Year,
		Month:     req.Month,
		Amount:    math.Round(req.Amount*100) / 100,
		Note:      trimNote(req.Note),
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create advance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AdvanceResponse{}, err
	}

	s.logger.Info("create advance success",
		zap.String("request_id", rid),
		zap.String("advance_id", a.ID.String()),
		zap.String("worker_id", req.WorkerID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Float64("amount", a.Amount),
	)
	return mapToResponse(a), nil
}

func (s *service) GetAll(ctx context.Context, filter GetAdvancesFilterRequest) ([]AdvanceResponse, error) {
	advances, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get advances failed", zap.Error(err))
		return nil, err
	}

	out := make([]AdvanceResponse, 0, len(advances))
	for i := range advances {
		out = append(out, mapToResponse(&advances[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return advanceerrors.ErrInvalidAdvanceID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return advanceerrors.ErrAdvanceNotFound
		}
		return err
	}
	s.logger.Info("delete advance success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("advance_id", id),
	)
	return nil
}

func trimNote(note *string) *string {
	if note == nil {
		return nil
	}
	v := strings.TrimSpace(*note)
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(a *Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:        a.ID.String(),
		WorkerID:  a.WorkerID.String(),
		Year:      a.Year,
		Month:     a.Month,
		Amount:    a.Amount,
		Note:      a.Note,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
