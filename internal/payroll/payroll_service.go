package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"dairy-erp/internal/advance"
	"dairy-erp/internal/events"
	"dairy-erp/internal/messaging/kafka"
	payrollerrors "dairy-erp/internal/payroll/errors"
	"dairy-erp/internal/salary"
	"dairy-erp/internal/salarybonus"
	"dairy-erp/internal/shared/apperror"
	"dairy-erp/internal/shared/contextutil"
	"dairy-erp/internal/shared/counter"
	"dairy-erp/internal/shared/storage"
	"dairy-erp/internal/worker"
	workererrors "dairy-erp/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPreviewConcurrency = 8

type WorkerReader interface {
	FindActive(ctx context.Context) ([]worker.Worker, error)
	FindByID(ctx context.Context, id string) (*worker.Worker, error)
}

type BonusReader interface {
	FindByWorkerPeriod(ctx context.Context, workerID string, year, month int) (*salarybonus.SalaryBonus, error)
}

type AdvanceReader interface {
	SumByWorkerPeriod(ctx context.Context, workerID string, year, month int) (float64, error)
}

type SettingsProvider interface {
	Current(ctx context.Context) (salary.Settings, error)
}

var (
	_ WorkerReader  = worker.Repository(nil)
	_ BonusReader   = salarybonus.Repository(nil)
	_ AdvanceReader = advance.Repository(nil)
)

type Service interface {
	GetMonthlyReport(ctx context.Context, workerID string, year, month int) (MonthlyReportResponse, error)
	UpdateWorkingDays(ctx context.Context, req UpdateWorkingDaysRequest) (PreviewResponse, error)
	EnsureWorkingDays(ctx context.Context, workerID string, year, month int) error
	Preview(ctx context.Context, year, month int) (PreviewResponse, error)

	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error)
	GetRecords(ctx context.Context, filter GetPayrollRecordsFilterRequest) ([]PayrollRecordResponse, error)
	GetRecordByID(ctx context.Context, id string) (PayrollRecordResponse, error)
	Approve(ctx context.Context, id string) (PayrollRecordResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollRecordResponse, error)
	Delete(ctx context.Context, id string) error
	GeneratePayslip(ctx context.Context, id string) (PayrollRecordResponse, error)
}

// Dependencies groups the collaborators of the payroll service. Outbox and
// Storage may be nil, which disables payslip events and payslip files.
type Dependencies struct {
	DB          *sql.DB
	Repo        Repository
	Workers     WorkerReader
	Bonuses     BonusReader
	Advances    AdvanceReader
	Settings    SettingsProvider
	Counter     counter.Repository
	Outbox      kafka.OutboxRepository
	Storage     storage.FileStorage
	Concurrency int
}

type service struct {
	db          *sql.DB
	repo        Repository
	workers     WorkerReader
	bonuses     BonusReader
	advances    AdvanceReader
	settings    SettingsProvider
	counter     counter.Repository
	outbox      kafka.OutboxRepository
	storage     storage.FileStorage
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	concurrency := deps.Concurrency
	if concurrency < 1 {
		concurrency = defaultPreviewConcurrency
	}
	return &service{
		db:          deps.DB,
		repo:        deps.Repo,
		workers:     deps.Workers,
		bonuses:     deps.Bonuses,
		advances:    deps.Advances,
		settings:    deps.Settings,
		counter:     deps.Counter,
		outbox:      deps.Outbox,
		storage:     deps.Storage,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      l,
	}
}

func (s *service) Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("generate payroll requested",
		zap.String("request_id", rid),
		zap.String("worker_id", req.WorkerID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
	)

	if !apperror.ValidPeriod(req.Year, req.Month) {
		return PayrollRecordResponse{}, apperror.ErrInvalidPeriod
	}
	w, err := s.findWorker(ctx, req.WorkerID)
	if err != nil {
		return PayrollRecordResponse{}, err
	}

	exists, err := s.repo.ExistsForWorkerPeriod(ctx, req.WorkerID, req.Year, req.Month)
	if err != nil {
		s.logger.Error("generate payroll duplicate check failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRecordResponse{}, err
	}
	if exists {
		return PayrollRecordResponse{}, payrollerrors.ErrPayrollExists
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		s.logger.Error("generate payroll load settings failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRecordResponse{}, err
	}

	report, err := s.monthlyReport(ctx, req.WorkerID, req.Year, req.Month)
	if err != nil {
		s.logger.Error("generate payroll monthly report failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.WorkingDays != nil {
		report.WorkingDays = salary.ClampWorkingDays(*req.WorkingDays)
		if err := qtx.UpsertWorkingDays(ctx, s.workingDaysRow(ctx, w.ID, req.Year, req.Month, report.WorkingDays)); err != nil {
			s.logger.Error("generate payroll persist working days failed", zap.Error(err))
			return PayrollRecordResponse{}, err
		}
	}

	row := salary.RecalculateAll([]salary.WorkerSalaryRow{applyReport(rowFor(*w), report)}, settings)[0]

	next, err := s.counter.GetNextValue(ctx, counter.TypePayrollNumber)
	if err != nil {
		s.logger.Error("generate payroll number failed", zap.Error(err))
		return PayrollRecordResponse{}, err
	}

	record := newRecord(*w, req.Year, req.Month, row, settings)
	record.ID = uuid.New()
	record.PayrollNumber = fmt.Sprintf("PAY-%04d%02d-%06d", req.Year, req.Month, next)
	if uid := contextutil.GetUserID(ctx); uid != "" {
		record.CreatedBy = &uid
	}

	if err := qtx.CreateRecord(ctx, record); err != nil {
		s.logger.Error("generate payroll persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRecordResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PayrollPayslipRequestedEvent{
			EventType:   events.EventTypePayrollPayslipRequested,
			RequestID:   rid,
			PayrollID:   record.ID.String(),
			WorkerID:    req.WorkerID,
			RequestedBy: contextutil.GetUserID(ctx),
			OccurredAt:  s.now(),
		}
		outboxEvent, err := kafka.NewOutboxEvent("payroll", record.ID.String(), event.EventType, events.PayrollPayslipRequestedTopic, rid, event)
		if err != nil {
			return PayrollRecordResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("generate payroll outbox persist failed",
				zap.String("payroll_id", record.ID.String()),
				zap.Error(err),
			)
			return PayrollRecordResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRecordResponse{}, err
	}

	s.logger.Info("generate payroll success",
		zap.String("request_id", rid),
		zap.String("payroll_id", record.ID.String()),
		zap.String("payroll_number", record.PayrollNumber),
		zap.Int64("net_pay_cents", record.NetPay),
	)
	return mapToResponse(record), nil
}

func (s *service) GetRecords(ctx context.Context, filter GetPayrollRecordsFilterRequest) ([]PayrollRecordResponse, error) {
	records, err := s.repo.FindRecords(ctx, filter)
	if err != nil {
		s.logger.Error("get payroll records failed", zap.Error(err))
		return nil, err
	}
	out := make([]PayrollRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, mapToResponse(&records[i]))
	}
	return out, nil
}

func (s *service) GetRecordByID(ctx context.Context, id string) (PayrollRecordResponse, error) {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return PayrollRecordResponse{}, err
	}
	return mapToResponse(record), nil
}

func (s *service) Approve(ctx context.Context, id string) (PayrollRecordResponse, error) {
	return s.transition(ctx, id, StatusDraft, StatusApproved, func(r *PayrollRecord, at time.Time, actor *string) {
		r.ApprovedAt = &at
		r.ApprovedBy = actor
	})
}

func (s *service) MarkPaid(ctx context.Context, id string) (PayrollRecordResponse, error) {
	return s.transition(ctx, id, StatusApproved, StatusPaid, func(r *PayrollRecord, at time.Time, _ *string) {
		r.PaidAt = &at
	})
}

func (s *service) transition(
	ctx context.Context,
	id, from, to string,
	apply func(r *PayrollRecord, at time.Time, actor *string),
) (PayrollRecordResponse, error) {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return PayrollRecordResponse{}, err
	}
	if record.Status != from {
		s.logger.Warn("payroll status transition rejected",
			zap.String("payroll_id", id),
			zap.String("status", record.Status),
			zap.String("target", to),
		)
		return PayrollRecordResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	var actor *string
	if uid := contextutil.GetUserID(ctx); uid != "" {
		actor = &uid
	}
	record.Status = to
	apply(record, s.now(), actor)

	if err := s.repo.UpdateStatus(ctx, record, from); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			s.logger.Warn("payroll status changed during transition",
				zap.String("payroll_id", id),
				zap.String("target", to),
			)
			return PayrollRecordResponse{}, payrollerrors.ErrInvalidStatusTransition
		}
		s.logger.Error("payroll status update failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollRecordResponse{}, err
	}

	s.logger.Info("payroll status changed",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_id", id),
		zap.String("from", from),
		zap.String("to", to),
	)
	return mapToResponse(record), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return err
	}
	if record.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}

	if err := s.repo.DeleteRecord(ctx, id, StatusDraft); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			return payrollerrors.ErrDeleteOnlyDraft
		}
		return mapRepositoryError(err)
	}

	if record.PayslipKey != nil && s.storage != nil {
		if err := s.storage.Delete(ctx, *record.PayslipKey); err != nil {
			s.logger.Warn("delete payslip file failed", zap.String("payroll_id", id), zap.Error(err))
		}
	}

	s.logger.Info("payroll deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_id", id),
	)
	return nil
}

func (s *service) findWorker(ctx context.Context, id string) (*worker.Worker, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, workererrors.ErrInvalidWorkerID
	}
	w, err := s.workers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workererrors.ErrWorkerNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *service) findRecord(ctx context.Context, id string) (*PayrollRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPayrollID
	}
	record, err := s.repo.FindRecordByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return record, nil
}

// newRecord stores amounts in cents. Components are rounded individually
// and the totals are summed from the rounded cents, so a stored record
// always satisfies gross = main + bonuses and net = gross - deductions.
func newRecord(w worker.Worker, year, month int, row salary.WorkerSalaryRow, settings salary.Settings) *PayrollRecord {
	mainSalary := toCents(row.MainSalary)
	monthlyBonus := toCents(deref(row.MonthlyBonus))
	lateBonus := toCents(deref(row.LateBonus))
	epf := toCents(row.EPFAmount)
	etf := toCents(row.ETFAmount)
	advance := toCents(deref(row.AdvanceAmount))

	gross := mainSalary + monthlyBonus + lateBonus
	deductions := advance + epf + etf

	return &PayrollRecord{
		WorkerID:        w.ID,
		Year:            year,
		Month:           month,
		WorkerCode:      w.WorkerCode,
		WorkerName:      w.FullName,
		DailySalary:     toCents(salary.ResolveDailySalary(row)),
		WorkingDays:     salary.ResolveWorkingDays(row),
		MainSalary:      mainSalary,
		MonthlyBonus:    monthlyBonus,
		LateBonus:       lateBonus,
		GrossSalary:     gross,
		EPFPercentage:   salary.ResolveEPFPercentage(row, settings),
		ETFPercentage:   salary.ResolveETFPercentage(row, settings),
		EPFAmount:       epf,
		ETFAmount:       etf,
		AdvanceAmount:   advance,
		TotalDeductions: deductions,
		NetPay:          gross - deductions,
		Status:          StatusDraft,
	}
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromCents(v int64) float64 {
	return float64(v) / 100
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(r *PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:                 r.ID.String(),
		PayrollNumber:      r.PayrollNumber,
		WorkerID:           r.WorkerID.String(),
		WorkerCode:         r.WorkerCode,
		WorkerName:         r.WorkerName,
		Year:               r.Year,
		Month:              r.Month,
		DailySalary:        fromCents(r.DailySalary),
		WorkingDays:        r.WorkingDays,
		MainSalary:         fromCents(r.MainSalary),
		MonthlyBonus:       fromCents(r.MonthlyBonus),
		LateBonus:          fromCents(r.LateBonus),
		GrossSalary:        fromCents(r.GrossSalary),
		EPFPercentage:      r.EPFPercentage,
		ETFPercentage:      r.ETFPercentage,
		EPFAmount:          fromCents(r.EPFAmount),
		ETFAmount:          fromCents(r.ETFAmount),
		AdvanceAmount:      fromCents(r.AdvanceAmount),
		TotalDeductions:    fromCents(r.TotalDeductions),
		NetPay:             fromCents(r.NetPay),
		Status:             r.Status,
		CreatedBy:          r.CreatedBy,
		ApprovedBy:         r.ApprovedBy,
		ApprovedAt:         formatTime(r.ApprovedAt),
		PaidAt:             formatTime(r.PaidAt),
		PayslipURL:         r.PayslipURL,
		PayslipGeneratedAt: formatTime(r.PayslipGeneratedAt),
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
}
