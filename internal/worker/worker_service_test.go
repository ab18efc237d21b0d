package worker_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"dairy-erp/internal/events"
	"dairy-erp/internal/messaging/kafka"
	"dairy-erp/internal/shared/apperror"
	"dairy-erp/internal/shared/contextutil"
	"dairy-erp/internal/shared/counter"
	"dairy-erp/internal/worker"
	workererrors "dairy-erp/internal/worker/errors"

	kafkaMock "dairy-erp/internal/messaging/kafka/mock"
	counterMock "dairy-erp/internal/shared/counter/mock"
	workerMock "dairy-erp/internal/worker/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service worker.Service
	repo    *workerMock.MockRepository
	counter *counterMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := workerMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: worker.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo),
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func ptr(v float64) *float64 { return &v }

func TestWorkerService_Create(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-1")

	t.Run("success - generates worker code and queues event", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.counter.EXPECT().GetNextValue(ctx, counter.TypeWorkerCode).Return(int64(7), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, w *worker.Worker) error {
			assert.Equal(t, "WRK-000007", w.WorkerCode)
			assert.Equal(t, "Nimal Perera", w.FullName)
			assert.Equal(t, 1500.0, w.DailySalary)
			assert.True(t, w.IsActive)
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.WorkerLifecycleTopic, ev.Topic)
			assert.Equal(t, events.EventTypeWorkerCreated, ev.EventType)
			assert.Equal(t, "req-1", ev.RequestID)

			var payload events.WorkerCreatedEvent
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "WRK-000007", payload.WorkerCode)
			assert.Equal(t, ev.AggregateID, payload.WorkerID)
			return nil
		})

		resp, err := deps.service.Create(ctx, worker.CreateWorkerRequest{
			FullName:    " Nimal Perera ",
			DailySalary: ptr(1500),
		})

		require.NoError(t, err)
		assert.Equal(t, "WRK-000007", resp.WorkerCode)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit worker code skips counter", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, worker.CreateWorkerRequest{
			WorkerCode:  "MILK-01",
			FullName:    "Kamal",
			DailySalary: ptr(0),
		})

		require.NoError(t, err)
		assert.Equal(t, "MILK-01", resp.WorkerCode)
	})

	t.Run("duplicate worker code maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_worker_code"})

		_, err := deps.service.Create(ctx, worker.CreateWorkerRequest{
			WorkerCode:  "MILK-01",
			FullName:    "Kamal",
			DailySalary: ptr(100),
		})

		assert.ErrorIs(t, err, workererrors.ErrWorkerCodeExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.counter.EXPECT().GetNextValue(ctx, counter.TypeWorkerCode).Return(int64(1), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.Create(ctx, worker.CreateWorkerRequest{FullName: "Kamal", DailySalary: ptr(100)})

		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative salary rejected before tx", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, worker.CreateWorkerRequest{FullName: "Kamal", DailySalary: ptr(-1)})

		assert.ErrorIs(t, err, workererrors.ErrInvalidSalary)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("percentage above 100 rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, worker.CreateWorkerRequest{
			FullName:      "Kamal",
			DailySalary:   ptr(100),
			EPFPercentage: ptr(120),
		})

		assert.ErrorIs(t, err, workererrors.ErrInvalidPercentage)
	})
}

func TestWorkerService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, workererrors.ErrInvalidWorkerID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&worker.Worker{
			ID:            id,
			WorkerCode:    "WRK-000001",
			FullName:      "Sunil",
			DailySalary:   1200,
			EPFPercentage: ptr(10),
			IsActive:      true,
		}, nil)

		resp, err := deps.service.GetByID(ctx, id.String())

		require.NoError(t, err)
		assert.Equal(t, "Sunil", resp.FullName)
		assert.Equal(t, 10.0, *resp.EPFPercentage)
		assert.Nil(t, resp.ETFPercentage)
	})
}

func TestWorkerService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("keeps legacy salary when omitted and toggles active flag", func(t *testing.T) {
		deps := setupServiceTest(t)
		existing := &worker.Worker{ID: id, WorkerCode: "WRK-000002", FullName: "Old", MainSalary: 26000, IsActive: true}
		inactive := false

		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(existing, nil)
		deps.repo.EXPECT().Update(ctx, existing).Return(nil)

		resp, err := deps.service.Update(ctx, id.String(), worker.UpdateWorkerRequest{
			FullName:    "New",
			DailySalary: ptr(900),
			IsActive:    &inactive,
		})

		require.NoError(t, err)
		assert.Equal(t, "New", resp.FullName)
		assert.Equal(t, 26000.0, resp.MainSalary)
		assert.Equal(t, 900.0, resp.DailySalary)
		assert.False(t, resp.IsActive)
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&worker.Worker{ID: id}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := deps.service.Update(ctx, id.String(), worker.UpdateWorkerRequest{FullName: "X", DailySalary: ptr(1)})

		assert.EqualError(t, err, "db down")
	})
}

func TestWorkerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, id)

		assert.ErrorIs(t, err, workererrors.ErrWorkerNotFound)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, id))
	})
}
