package worker

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"dairy-erp/internal/events"
	"dairy-erp/internal/messaging/kafka"
	"dairy-erp/internal/shared/contextutil"
	"dairy-erp/internal/shared/counter"
	workererrors "dairy-erp/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	GetAll(ctx context.Context, filter GetWorkersFilterRequest) ([]WorkerResponse, error)
	GetByID(ctx context.Context, id string) (WorkerResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("worker.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worker.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create worker requested",
		zap.String("request_id", rid),
		zap.String("full_name", req.FullName),
	)

	if err := validateRates(req.DailySalary, req.MainSalary, req.EPFPercentage, req.ETFPercentage); err != nil {
		return WorkerResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create worker begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	code := strings.TrimSpace(req.WorkerCode)
	if code == "" {
		next, err := s.counter.GetNextValue(ctx, counter.TypeWorkerCode)
		if err != nil {
			s.logger.Error("create worker generate code failed", zap.Error(err))
			return WorkerResponse{}, err
		}
		code = fmt.Sprintf("WRK-%06d", next)
	}

	w := &Worker{
		ID:            uuid.New(),
		WorkerCode:    code,
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         req.Phone,
		DailySalary:   valueOrZero(req.DailySalary),
		MainSalary:    valueOrZero(req.MainSalary),
		EPFPercentage: req.EPFPercentage,
		ETFPercentage: req.ETFPercentage,
		IsActive:      true,
	}

	if err := qtx.Create(ctx, w); err != nil {
		s.logger.Error("create worker persist failed", zap.Error(err))
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.WorkerCreatedEvent{
			EventType:  events.EventTypeWorkerCreated,
			RequestID:  rid,
			WorkerID:   w.ID.String(),
			WorkerCode: w.WorkerCode,
			OccurredAt: time.Now().UTC(),
		}
		outboxEvent, err := kafka.NewOutboxEvent("worker", w.ID.String(), event.EventType, events.WorkerLifecycleTopic, rid, event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return WorkerResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("create worker outbox persist failed",
				zap.String("worker_id", w.ID.String()),
				zap.Error(err),
			)
			return WorkerResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return WorkerResponse{}, err
	}

	s.logger.Info("create worker success",
		zap.String("request_id", rid),
		zap.String("worker_id", w.ID.String()),
		zap.String("worker_code", w.WorkerCode),
	)
	return mapToResponse(w), nil
}

func (s *service) GetAll(ctx context.Context, filter GetWorkersFilterRequest) ([]WorkerResponse, error) {
	workers, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all workers failed", zap.Error(err))
		return nil, err
	}

	out := make([]WorkerResponse, 0, len(workers))
	for i := range workers {
		out = append(out, mapToResponse(&workers[i]))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWorkerID
	}

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(w), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkerRequest) (WorkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWorkerID
	}
	if err := validateRates(req.DailySalary, req.MainSalary, req.EPFPercentage, req.ETFPercentage); err != nil {
		return WorkerResponse{}, err
	}

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	w.FullName = strings.TrimSpace(req.FullName)
	w.Phone = req.Phone
	w.DailySalary = valueOrZero(req.DailySalary)
	if req.MainSalary != nil {
		w.MainSalary = *req.MainSalary
	}
	w.EPFPercentage = req.EPFPercentage
	w.ETFPercentage = req.ETFPercentage
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, w); err != nil {
		s.logger.Error("update worker persist failed",
			zap.String("request_id", rid),
			zap.String("worker_id", id),
			zap.Error(err),
		)
		return WorkerResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update worker success", zap.String("request_id", rid), zap.String("worker_id", id))
	return mapToResponse(w), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return workererrors.ErrInvalidWorkerID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("delete worker success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("worker_id", id),
	)
	return nil
}

func validateRates(daily, main, epf, etf *float64) error {
	for _, v := range []*float64{daily, main} {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return workererrors.ErrInvalidSalary
		}
	}
	for _, v := range []*float64{epf, etf} {
		if v != nil && (*v < 0 || *v > 100 || math.IsNaN(*v)) {
			return workererrors.ErrInvalidPercentage
		}
	}
	return nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func mapToResponse(w *Worker) WorkerResponse {
	return WorkerResponse{
		ID:            w.ID.String(),
		WorkerCode:    w.WorkerCode,
		FullName:      w.FullName,
		Phone:         w.Phone,
		DailySalary:   w.DailySalary,
		MainSalary:    w.MainSalary,
		EPFPercentage: w.EPFPercentage,
		ETFPercentage: w.ETFPercentage,
		IsActive:      w.IsActive,
		CreatedAt:     w.CreatedAt.Format(time.RFC3339),
	}
}
