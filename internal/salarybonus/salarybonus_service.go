package salarybonus

import (
	"context"
	"errors"
	"math"
	"time"

	"dairy-erp/internal/shared/apperror"
	"dairy-erp/internal/shared/contextutil"
	salarybonuserrors "dairy-erp/internal/salarybonus/errors"
	"dairy-erp/internal/worker"
	workererrors "dairy-erp/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WorkerFinder interface {
	FindByID(ctx context.Context, id string) (*worker.Worker, error)
}

type Service interface {
	Upsert(ctx context.Context, req UpsertSalaryBonusRequest) (SalaryBonusResponse, error)
	GetAll(ctx context.Context, filter GetSalaryBonusesFilterRequest) ([]SalaryBonusResponse, error)
}

type service struct {
	repo    Repository
	workers WorkerFinder
	logger  *zap.Logger
}

func NewService(repo Repository, workers WorkerFinder, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarybonus.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarybonus.service")
	}
	return &service{repo: repo, workers: workers, logger: l}
}

// Upsert replaces whatever was stored for the worker's period.
func (s *service) Upsert(ctx context.Context, req UpsertSalaryBonusRequest) (SalaryBonusResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !apperror.ValidPeriod(req.Year, req.Month) {
		return SalaryBonusResponse{}, apperror.ErrInvalidPeriod
	}
	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		return SalaryBonusResponse{}, workererrors.ErrInvalidWorkerID
	}
	monthly, late := amount(req.MonthlyBonus), amount(req.LateBonus)
	if monthly < 0 || late < 0 {
		return SalaryBonusResponse{}, salarybonuserrors.ErrInvalidBonus
	}

	if _, err := s.workers.FindByID(ctx, req.WorkerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryBonusResponse{}, workererrors.ErrWorkerNotFound
		}
		return SalaryBonusResponse{}, err
	}

	now := time.Now().UTC()
	bonus := &SalaryBonus{
		ID:           uuid.New(),
		WorkerID:     workerID,
		Year:         req.Year,
		Month:        req.Month,
		MonthlyBonus: monthly,
		LateBonus:    late,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Upsert(ctx, bonus); err != nil {
		s.logger.Error("upsert salary bonus failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryBonusResponse{}, err
	}

	s.logger.Info("upsert salary bonus success",
		zap.String("request_id", rid),
		zap.String("worker_id", req.WorkerID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
	)
	return mapToResponse(bonus), nil
}

func (s *service) GetAll(ctx context.Context, filter GetSalaryBonusesFilterRequest) ([]SalaryBonusResponse, error) {
	bonuses, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SalaryBonusResponse, 0, len(bonuses))
	for i := range bonuses {
		out = append(out, mapToResponse(&bonuses[i]))
	}
	return out, nil
}

func amount(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return math.Round(*v*100) / 100
}

func mapToResponse(b *SalaryBonus) SalaryBonusResponse {
	return SalaryBonusResponse{
		ID:           b.ID.String(),
		WorkerID:     b.WorkerID.String(),
		Year:         b.Year,
		Month:        b.Month,
		MonthlyBonus: b.MonthlyBonus,
		LateBonus:    b.LateBonus,
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
}
