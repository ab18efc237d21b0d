package payroll_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"dairy-erp/internal/events"
	"dairy-erp/internal/messaging/kafka"
	"dairy-erp/internal/payroll"
	payrollerrors "dairy-erp/internal/payroll/errors"
	"dairy-erp/internal/salary"
	"dairy-erp/internal/salarybonus"
	"dairy-erp/internal/shared/apperror"
	"dairy-erp/internal/shared/contextutil"
	"dairy-erp/internal/shared/counter"
	"dairy-erp/internal/worker"
	workererrors "dairy-erp/internal/worker/errors"

	kafkaMock "dairy-erp/internal/messaging/kafka/mock"
	counterMock "dairy-erp/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const tolerance = 1e-6

type serviceDeps struct {
	sqlMock  sqlmock.Sqlmock
	service  payroll.Service
	repo     *fakeRepo
	counter  *counterMock.MockRepository
	outbox   *kafkaMock.MockOutboxRepository
	storage  *fakeStorage
	workers  fakeWorkers
	bonuses  fakeBonuses
	advances fakeAdvances
}

type fixture struct {
	workers  []worker.Worker
	bonuses  map[string]*salarybonus.SalaryBonus
	bonusErr map[string]error
	advances fakeAdvances
	settings *fakeSettings
}

func setupServiceTest(t *testing.T, fx fixture) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	settings := fakeSettings{settings: salary.DefaultSettings()}
	if fx.settings != nil {
		settings = *fx.settings
	}

	deps := &serviceDeps{
		sqlMock:  sqlMock,
		repo:     newFakeRepo(),
		counter:  counterMock.NewMockRepository(ctrl),
		outbox:   kafkaMock.NewMockOutboxRepository(ctrl),
		storage:  &fakeStorage{},
		workers:  fakeWorkers{list: fx.workers},
		bonuses:  fakeBonuses{byWorker: fx.bonuses, errs: fx.bonusErr},
		advances: fx.advances,
	}
	deps.service = payroll.NewService(payroll.Dependencies{
		DB:          db,
		Repo:        deps.repo,
		Workers:     deps.workers,
		Bonuses:     deps.bonuses,
		Advances:    deps.advances,
		Settings:    settings,
		Counter:     deps.counter,
		Outbox:      deps.outbox,
		Storage:     deps.storage,
		Concurrency: 2,
	})
	return deps
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

func newWorker(code string, daily, legacyMain float64) worker.Worker {
	return worker.Worker{
		ID:          uuid.New(),
		WorkerCode:  code,
		FullName:    "Worker " + code,
		DailySalary: daily,
		MainSalary:  legacyMain,
		IsActive:    true,
	}
}

func findRow(t *testing.T, rows []salary.WorkerSalaryRow, id uuid.UUID) salary.WorkerSalaryRow {
	t.Helper()
	for _, r := range rows {
		if r.WorkerID == id.String() {
			return r
		}
	}
	t.Fatalf("row for worker %s not found", id)
	return salary.WorkerSalaryRow{}
}

func TestPayrollService_Preview(t *testing.T) {
	regular := newWorker("WRK-000001", 1000, 0)
	legacy := newWorker("WRK-000002", 0, 26000)
	broken := newWorker("WRK-000003", 500, 0)
	indebted := newWorker("WRK-000004", 100, 0)

	deps := setupServiceTest(t, fixture{
		workers: []worker.Worker{regular, legacy, broken, indebted},
		bonuses: map[string]*salarybonus.SalaryBonus{
			regular.ID.String(): {MonthlyBonus: 500, LateBonus: 100},
		},
		bonusErr: map[string]error{broken.ID.String(): errors.New("timeout")},
		advances: fakeAdvances{regular.ID.String(): 2000, indebted.ID.String(): 10000},
	})
	require.NoError(t, deps.repo.UpsertWorkingDays(context.Background(), &payroll.WorkingDays{
		WorkerID: regular.ID, Year: 2024, Month: 5, WorkingDays: 20,
	}))

	resp, err := deps.service.Preview(context.Background(), 2024, 5)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 4)
	assert.Equal(t, regular.ID.String(), resp.Rows[0].WorkerID, "roster order is preserved")

	r := findRow(t, resp.Rows, regular.ID)
	assert.Equal(t, 20, *r.WorkingDays)
	assert.InDelta(t, 20000, r.MainSalary, tolerance)
	assert.InDelta(t, 20600, r.GrossSalary, tolerance)
	assert.InDelta(t, 1648, r.EPFAmount, tolerance)
	assert.InDelta(t, 618, r.ETFAmount, tolerance)
	assert.InDelta(t, 4266, r.TotalDeductions, tolerance)
	assert.InDelta(t, 16334, r.NetPay, tolerance)

	l := findRow(t, resp.Rows, legacy.ID)
	assert.Equal(t, salary.StandardWorkingDays, *l.WorkingDays)
	assert.InDelta(t, 1000, *l.DailySalary, tolerance)
	assert.InDelta(t, 26000, l.MainSalary, tolerance)
	assert.InDelta(t, 23140, l.NetPay, tolerance)

	b := findRow(t, resp.Rows, broken.ID)
	assert.InDelta(t, 13000, b.GrossSalary, tolerance)
	assert.Nil(t, b.MonthlyBonus, "failed report keeps bonuses unset")
	assert.Nil(t, b.LateBonus)
	assert.Nil(t, b.AdvanceAmount)

	d := findRow(t, resp.Rows, indebted.ID)
	assert.Less(t, d.NetPay, 0.0)

	codes := map[string]string{}
	for _, w := range resp.Warnings {
		codes[w.WorkerID] = w.Code
	}
	assert.Equal(t, payroll.WarningReportUnavailable, codes[broken.ID.String()])
	assert.Equal(t, payroll.WarningNegativeNet, codes[indebted.ID.String()])
	assert.Len(t, resp.Warnings, 2)

	assert.InDelta(t, r.NetPay+l.NetPay+b.NetPay+d.NetPay, resp.Totals.NetPay, tolerance)
	assert.Equal(t, salary.DefaultSettings(), resp.Settings)
}

func TestPayrollService_Preview_Errors(t *testing.T) {
	t.Run("invalid period", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		_, err := deps.service.Preview(context.Background(), 2024, 13)
		assert.ErrorIs(t, err, apperror.ErrInvalidPeriod)
	})

	t.Run("settings failure", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{settings: &fakeSettings{err: errors.New("redis down")}})
		_, err := deps.service.Preview(context.Background(), 2024, 1)
		assert.EqualError(t, err, "redis down")
	})

	t.Run("empty roster", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		resp, err := deps.service.Preview(context.Background(), 2024, 1)
		require.NoError(t, err)
		assert.Empty(t, resp.Rows)
		assert.NotNil(t, resp.Warnings)
	})

	t.Run("cancelled context", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{workers: []worker.Worker{newWorker("WRK-1", 1, 0)}})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := deps.service.Preview(ctx, 2024, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPayrollService_GetMonthlyReport(t *testing.T) {
	w := newWorker("WRK-000001", 1000, 0)
	deps := setupServiceTest(t, fixture{workers: []worker.Worker{w}})

	t.Run("defaults when nothing is stored", func(t *testing.T) {
		report, err := deps.service.GetMonthlyReport(context.Background(), w.ID.String(), 2024, 2)
		require.NoError(t, err)
		assert.Equal(t, salary.StandardWorkingDays, report.WorkingDays)
		assert.Zero(t, report.MonthlyBonus)
		assert.Zero(t, report.LateBonus)
		assert.Zero(t, report.TotalAdvance)
	})

	t.Run("unknown worker", func(t *testing.T) {
		_, err := deps.service.GetMonthlyReport(context.Background(), uuid.NewString(), 2024, 2)
		assert.ErrorIs(t, err, workererrors.ErrWorkerNotFound)
	})

	t.Run("working days lookup failure", func(t *testing.T) {
		deps.repo.findWDErr[w.ID.String()] = errors.New("db down")
		defer delete(deps.repo.findWDErr, w.ID.String())

		_, err := deps.service.GetMonthlyReport(context.Background(), w.ID.String(), 2024, 2)
		assert.ErrorContains(t, err, "db down")
	})
}

func TestPayrollService_UpdateWorkingDays(t *testing.T) {
	a := newWorker("WRK-000001", 1000, 0)
	b := newWorker("WRK-000002", 1000, 0)
	deps := setupServiceTest(t, fixture{workers: []worker.Worker{a, b}})
	ctx := contextutil.WithUserID(context.Background(), "supervisor-1")

	tests := []struct {
		name string
		in   float64
		want int
	}{
		{name: "clamped to max", in: 40.7, want: salary.MaxWorkingDays},
		{name: "truncated", in: 12.9, want: 12},
		{name: "negative to zero", in: -3, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			resp, err := deps.service.UpdateWorkingDays(ctx, payroll.UpdateWorkingDaysRequest{
				WorkerID: a.ID.String(), Year: 2024, Month: 6, WorkingDays: &in,
			})
			require.NoError(t, err)

			stored, _ := deps.repo.FindWorkingDays(ctx, a.ID.String(), 2024, 6)
			require.NotNil(t, stored)
			assert.Equal(t, tt.want, stored.WorkingDays)
			assert.Equal(t, "supervisor-1", *stored.UpdatedBy)

			row := findRow(t, resp.Rows, a.ID)
			assert.Equal(t, tt.want, *row.WorkingDays)
			assert.InDelta(t, float64(tt.want)*1000, row.MainSalary, tolerance)

			other := findRow(t, resp.Rows, b.ID)
			assert.Equal(t, salary.StandardWorkingDays, *other.WorkingDays)
		})
	}
}

func TestPayrollService_EnsureWorkingDays(t *testing.T) {
	w := newWorker("WRK-000001", 1000, 0)
	deps := setupServiceTest(t, fixture{workers: []worker.Worker{w}})
	ctx := context.Background()

	require.NoError(t, deps.repo.UpsertWorkingDays(ctx, &payroll.WorkingDays{WorkerID: w.ID, Year: 2024, Month: 7, WorkingDays: 18}))

	require.NoError(t, deps.service.EnsureWorkingDays(ctx, w.ID.String(), 2024, 7))
	require.NoError(t, deps.service.EnsureWorkingDays(ctx, w.ID.String(), 2024, 8))

	july, _ := deps.repo.FindWorkingDays(ctx, w.ID.String(), 2024, 7)
	august, _ := deps.repo.FindWorkingDays(ctx, w.ID.String(), 2024, 8)
	assert.Equal(t, 18, july.WorkingDays)
	assert.Equal(t, salary.StandardWorkingDays, august.WorkingDays)

	assert.Error(t, deps.service.EnsureWorkingDays(ctx, "not-a-uuid", 2024, 8))
}

func TestPayrollService_Generate(t *testing.T) {
	w := newWorker("WRK-000009", 1500, 0)
	fx := fixture{
		workers:  []worker.Worker{w},
		bonuses:  map[string]*salarybonus.SalaryBonus{w.ID.String(): {MonthlyBonus: 1000}},
		advances: fakeAdvances{w.ID.String(): 500},
	}
	ctx := contextutil.WithUserID(contextutil.WithRequestID(context.Background(), "req-7"), "accountant-1")

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t, fx)
		expectTx(t, deps.sqlMock, true)
		days := 22.9

		deps.counter.EXPECT().GetNextValue(ctx, counter.TypePayrollNumber).Return(int64(12), nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.PayrollPayslipRequestedTopic, ev.Topic)
			assert.Equal(t, "payroll", ev.AggregateType)

			var payload events.PayrollPayslipRequestedEvent
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, ev.AggregateID, payload.PayrollID)
			assert.Equal(t, "accountant-1", payload.RequestedBy)
			assert.Equal(t, "req-7", payload.RequestID)
			return nil
		})

		resp, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{
			WorkerID: w.ID.String(), Year: 2024, Month: 5, WorkingDays: &days,
		})

		require.NoError(t, err)
		assert.Equal(t, "PAY-202405-000012", resp.PayrollNumber)
		assert.Equal(t, payroll.StatusDraft, resp.Status)
		assert.Equal(t, 22, resp.WorkingDays)
		assert.Equal(t, 33000.0, resp.MainSalary)
		assert.Equal(t, 34000.0, resp.GrossSalary)
		assert.Equal(t, 2720.0, resp.EPFAmount)
		assert.Equal(t, 1020.0, resp.ETFAmount)
		assert.Equal(t, 4240.0, resp.TotalDeductions)
		assert.Equal(t, 29760.0, resp.NetPay)
		assert.Equal(t, "accountant-1", *resp.CreatedBy)

		stored := deps.repo.records[resp.ID]
		require.NotNil(t, stored)
		assert.Equal(t, int64(2976000), stored.NetPay)
		assert.Equal(t, "WRK-000009", stored.WorkerCode)

		wd, _ := deps.repo.FindWorkingDays(ctx, w.ID.String(), 2024, 5)
		require.NotNil(t, wd)
		assert.Equal(t, 22, wd.WorkingDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate period is a conflict", func(t *testing.T) {
		deps := setupServiceTest(t, fx)
		deps.repo.records["x"] = &payroll.PayrollRecord{WorkerID: w.ID, Year: 2024, Month: 5}

		_, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{WorkerID: w.ID.String(), Year: 2024, Month: 5})

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollExists)
		assert.Equal(t, 409, apperror.ToHTTP(err).Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unique violation on insert maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t, fx)
		deps.repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_worker_period"}
		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().GetNextValue(ctx, counter.TypePayrollNumber).Return(int64(1), nil)

		_, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{WorkerID: w.ID.String(), Year: 2024, Month: 5})

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("stored working days are used when none are sent", func(t *testing.T) {
		deps := setupServiceTest(t, fx)
		require.NoError(t, deps.repo.UpsertWorkingDays(ctx, &payroll.WorkingDays{WorkerID: w.ID, Year: 2024, Month: 6, WorkingDays: 10}))
		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().GetNextValue(ctx, counter.TypePayrollNumber).Return(int64(2), nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{WorkerID: w.ID.String(), Year: 2024, Month: 6})

		require.NoError(t, err)
		assert.Equal(t, 10, resp.WorkingDays)
		assert.Equal(t, 15000.0, resp.MainSalary)
	})

	t.Run("stored totals are summed from rounded cents", func(t *testing.T) {
		tiny := newWorker("WRK-000010", 0.004, 0)
		deps := setupServiceTest(t, fixture{
			workers: []worker.Worker{tiny},
			bonuses: map[string]*salarybonus.SalaryBonus{tiny.ID.String(): {MonthlyBonus: 0.004, LateBonus: 0.004}},
		})
		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().GetNextValue(ctx, counter.TypePayrollNumber).Return(int64(3), nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		one := 1.0

		resp, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{
			WorkerID: tiny.ID.String(), Year: 2024, Month: 5, WorkingDays: &one,
		})

		require.NoError(t, err)
		stored := deps.repo.records[resp.ID]
		require.NotNil(t, stored)
		assert.Equal(t, stored.MainSalary+stored.MonthlyBonus+stored.LateBonus, stored.GrossSalary)
		assert.Equal(t, stored.AdvanceAmount+stored.EPFAmount+stored.ETFAmount, stored.TotalDeductions)
		assert.Equal(t, stored.GrossSalary-stored.TotalDeductions, stored.NetPay)
		assert.Zero(t, stored.GrossSalary)
	})

	t.Run("unknown worker", func(t *testing.T) {
		deps := setupServiceTest(t, fx)
		_, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{WorkerID: uuid.NewString(), Year: 2024, Month: 5})
		assert.ErrorIs(t, err, workererrors.ErrWorkerNotFound)
	})
}

func seedRecord(deps *serviceDeps, status string) *payroll.PayrollRecord {
	r := &payroll.PayrollRecord{
		ID:            uuid.New(),
		PayrollNumber: "PAY-202405-000001",
		WorkerID:      uuid.New(),
		Year:          2024,
		Month:         5,
		WorkerCode:    "WRK-000001",
		WorkerName:    "Nimal",
		DailySalary:   100000,
		WorkingDays:   26,
		MainSalary:    2600000,
		GrossSalary:   2600000,
		EPFPercentage: 8,
		ETFPercentage: 3,
		EPFAmount:     208000,
		ETFAmount:     78000,
		NetPay:        2314000,
		Status:        status,
	}
	deps.repo.records[r.ID.String()] = r
	return r
}

func TestPayrollService_StatusTransitions(t *testing.T) {
	ctx := contextutil.WithUserID(context.Background(), "admin-1")

	t.Run("draft to approved to paid", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		r := seedRecord(deps, payroll.StatusDraft)

		approved, err := deps.service.Approve(ctx, r.ID.String())
		require.NoError(t, err)
		assert.Equal(t, payroll.StatusApproved, approved.Status)
		assert.Equal(t, "admin-1", *approved.ApprovedBy)
		assert.NotNil(t, approved.ApprovedAt)

		paid, err := deps.service.MarkPaid(ctx, r.ID.String())
		require.NoError(t, err)
		assert.Equal(t, payroll.StatusPaid, paid.Status)
		assert.NotNil(t, paid.PaidAt)
	})

	t.Run("paying a draft is rejected", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		r := seedRecord(deps, payroll.StatusDraft)
		_, err := deps.service.MarkPaid(ctx, r.ID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("approving twice is rejected", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		r := seedRecord(deps, payroll.StatusApproved)
		_, err := deps.service.Approve(ctx, r.ID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("status changed after the read is rejected", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		r := seedRecord(deps, payroll.StatusDraft)
		deps.repo.beforeWrite = func() {
			deps.repo.mu.Lock()
			defer deps.repo.mu.Unlock()
			deps.repo.records[r.ID.String()].Status = payroll.StatusApproved
		}

		_, err := deps.service.Approve(ctx, r.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
		assert.Nil(t, deps.repo.records[r.ID.String()].ApprovedBy)
	})

	t.Run("concurrent approvals have one winner", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		r := seedRecord(deps, payroll.StatusDraft)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = deps.service.Approve(ctx, r.ID.String())
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		_, err := deps.service.Approve(ctx, uuid.NewString())
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
		_, err = deps.service.GetRecordByID(ctx, "nope")
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollID)
	})
}

func TestPayrollService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("draft is deleted with its payslip", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		r := seedRecord(deps, payroll.StatusDraft)
		key := "payslips/2024/05/PAY-202405-000001.pdf"
		r.PayslipKey = &key

		require.NoError(t, deps.service.Delete(ctx, r.ID.String()))
		assert.NotContains(t, deps.repo.records, r.ID.String())
		assert.Equal(t, []string{key}, deps.storage.deleted)
	})

	t.Run("approved cannot be deleted", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		r := seedRecord(deps, payroll.StatusApproved)
		assert.ErrorIs(t, deps.service.Delete(ctx, r.ID.String()), payrollerrors.ErrDeleteOnlyDraft)
	})

	t.Run("approved between read and delete is kept", func(t *testing.T) {
		deps := setupServiceTest(t, fixture{})
		r := seedRecord(deps, payroll.StatusDraft)
		deps.repo.beforeWrite = func() {
			deps.repo.mu.Lock()
			defer deps.repo.mu.Unlock()
			deps.repo.records[r.ID.String()].Status = payroll.StatusApproved
		}

		assert.ErrorIs(t, deps.service.Delete(ctx, r.ID.String()), payrollerrors.ErrDeleteOnlyDraft)
		assert.Contains(t, deps.repo.records, r.ID.String())
		assert.Empty(t, deps.storage.deleted)
	})
}

func TestPayrollService_GeneratePayslip(t *testing.T) {
	deps := setupServiceTest(t, fixture{})
	r := seedRecord(deps, payroll.StatusDraft)

	resp, err := deps.service.GeneratePayslip(context.Background(), r.ID.String())

	require.NoError(t, err)
	require.NotNil(t, resp.PayslipURL)
	assert.Equal(t, "http://files.local/payslips/2024/05/PAY-202405-000001.pdf", *resp.PayslipURL)
	assert.NotNil(t, resp.PayslipGeneratedAt)

	body := deps.storage.files["payslips/2024/05/PAY-202405-000001.pdf"]
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
	assert.NotNil(t, deps.repo.records[r.ID.String()].PayslipKey)
}

func TestPayrollService_GetRecords(t *testing.T) {
	deps := setupServiceTest(t, fixture{})
	seedRecord(deps, payroll.StatusDraft)
	seedRecord(deps, payroll.StatusPaid)

	resp, err := deps.service.GetRecords(context.Background(), payroll.GetPayrollRecordsFilterRequest{Status: payroll.StatusPaid})

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, 23140.0, resp[0].NetPay)
}
