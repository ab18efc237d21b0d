package payroll

import (
	"context"
	"fmt"

	"dairy-erp/internal/salary"
	"dairy-erp/internal/shared/apperror"
	"dairy-erp/internal/shared/contextutil"
	"dairy-erp/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (s *service) GetMonthlyReport(ctx context.Context, workerID string, year, month int) (MonthlyReportResponse, error) {
	if !apperror.ValidPeriod(year, month) {
		return MonthlyReportResponse{}, apperror.ErrInvalidPeriod
	}
	if _, err := s.findWorker(ctx, workerID); err != nil {
		return MonthlyReportResponse{}, err
	}
	return s.monthlyReport(ctx, workerID, year, month)
}

// monthlyReport gathers the per-month inputs of one worker. Working days
// default to the standard month when none are stored.
func (s *service) monthlyReport(ctx context.Context, workerID string, year, month int) (MonthlyReportResponse, error) {
	report := MonthlyReportResponse{
		WorkerID:    workerID,
		Year:        year,
		Month:       month,
		WorkingDays: salary.StandardWorkingDays,
	}

	wd, err := s.repo.FindWorkingDays(ctx, workerID, year, month)
	if err != nil {
		return MonthlyReportResponse{}, fmt.Errorf("working days: %w", err)
	}
	if wd != nil {
		report.WorkingDays = wd.WorkingDays
	}

	bonus, err := s.bonuses.FindByWorkerPeriod(ctx, workerID, year, month)
	if err != nil {
		return MonthlyReportResponse{}, fmt.Errorf("salary bonus: %w", err)
	}
	if bonus != nil {
		report.MonthlyBonus = bonus.MonthlyBonus
		report.LateBonus = bonus.LateBonus
	}

	total, err := s.advances.SumByWorkerPeriod(ctx, workerID, year, month)
	if err != nil {
		return MonthlyReportResponse{}, fmt.Errorf("advances: %w", err)
	}
	report.TotalAdvance = total

	return report, nil
}

func (s *service) Preview(ctx context.Context, year, month int) (PreviewResponse, error) {
	if !apperror.ValidPeriod(year, month) {
		return PreviewResponse{}, apperror.ErrInvalidPeriod
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		s.logger.Error("preview load settings failed", zap.Error(err))
		return PreviewResponse{}, err
	}

	rows, warnings, err := s.loadSnapshot(ctx, year, month)
	if err != nil {
		return PreviewResponse{}, err
	}

	return buildPreview(year, month, settings, salary.RecalculateAll(rows, settings), warnings), nil
}

func (s *service) UpdateWorkingDays(ctx context.Context, req UpdateWorkingDaysRequest) (PreviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !apperror.ValidPeriod(req.Year, req.Month) {
		return PreviewResponse{}, apperror.ErrInvalidPeriod
	}
	w, err := s.findWorker(ctx, req.WorkerID)
	if err != nil {
		return PreviewResponse{}, err
	}

	var raw float64
	if req.WorkingDays != nil {
		raw = *req.WorkingDays
	}
	days := salary.ClampWorkingDays(raw)

	if err := s.repo.UpsertWorkingDays(ctx, s.workingDaysRow(ctx, w.ID, req.Year, req.Month, days)); err != nil {
		s.logger.Error("update working days persist failed", zap.String("request_id", rid), zap.Error(err))
		return PreviewResponse{}, err
	}
	s.logger.Info("working days updated",
		zap.String("request_id", rid),
		zap.String("worker_id", req.WorkerID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("working_days", days),
	)

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return PreviewResponse{}, err
	}
	rows, warnings, err := s.loadSnapshot(ctx, req.Year, req.Month)
	if err != nil {
		return PreviewResponse{}, err
	}

	rows = salary.SetWorkingDays(rows, req.WorkerID, float64(days))
	return buildPreview(req.Year, req.Month, settings, salary.RecalculateAll(rows, settings), warnings), nil
}

func (s *service) EnsureWorkingDays(ctx context.Context, workerID string, year, month int) error {
	id, err := uuid.Parse(workerID)
	if err != nil {
		return err
	}
	return s.repo.CreateWorkingDaysIfAbsent(ctx, s.workingDaysRow(ctx, id, year, month, salary.StandardWorkingDays))
}

// loadSnapshot returns one unrecalculated row per active worker. Reports
// are fetched concurrently; a worker whose report fails keeps its profile
// values and is flagged in the warnings. Every fetch settles before the
// snapshot is returned.
func (s *service) loadSnapshot(ctx context.Context, year, month int) ([]salary.WorkerSalaryRow, []PreviewWarning, error) {
	workers, err := s.workers.FindActive(ctx)
	if err != nil {
		s.logger.Error("preview load roster failed", zap.Error(err))
		return nil, nil, err
	}

	rows := make([]salary.WorkerSalaryRow, len(workers))
	failed := make([]bool, len(workers))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range workers {
		i := i
		g.Go(func() error {
			rows[i] = rowFor(workers[i])
			report, err := s.monthlyReport(ctx, workers[i].ID.String(), year, month)
			if err != nil {
				s.logger.Warn("monthly report unavailable, using base values",
					zap.String("worker_id", workers[i].ID.String()),
					zap.Int("year", year),
					zap.Int("month", month),
					zap.Error(err),
				)
				failed[i] = true
				return nil
			}
			rows[i] = applyReport(rows[i], report)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var warnings []PreviewWarning
	for i, f := range failed {
		if f {
			warnings = append(warnings, PreviewWarning{
				WorkerID: rows[i].WorkerID,
				Code:     WarningReportUnavailable,
				Message:  "monthly report could not be loaded; bonuses, advances and working days use defaults",
			})
		}
	}
	return rows, warnings, nil
}

func (s *service) workingDaysRow(ctx context.Context, workerID uuid.UUID, year, month, days int) *WorkingDays {
	wd := &WorkingDays{
		WorkerID:    workerID,
		Year:        year,
		Month:       month,
		WorkingDays: days,
		UpdatedAt:   s.now(),
	}
	if uid := contextutil.GetUserID(ctx); uid != "" {
		wd.UpdatedBy = &uid
	}
	return wd
}

func rowFor(w worker.Worker) salary.WorkerSalaryRow {
	row := salary.WorkerSalaryRow{
		WorkerID:      w.ID.String(),
		WorkerCode:    w.WorkerCode,
		WorkerName:    w.FullName,
		MainSalary:    w.MainSalary,
		EPFPercentage: w.EPFPercentage,
		ETFPercentage: w.ETFPercentage,
	}
	if w.DailySalary > 0 {
		row.DailySalary = salary.Float(w.DailySalary)
	}
	return row
}

func applyReport(row salary.WorkerSalaryRow, report MonthlyReportResponse) salary.WorkerSalaryRow {
	row.WorkingDays = salary.Int(report.WorkingDays)
	row.MonthlyBonus = salary.Float(report.MonthlyBonus)
	row.LateBonus = salary.Float(report.LateBonus)
	row.AdvanceAmount = salary.Float(report.TotalAdvance)
	return row
}

func buildPreview(year, month int, settings salary.Settings, rows []salary.WorkerSalaryRow, warnings []PreviewWarning) PreviewResponse {
	for _, id := range salary.NegativeNet(rows) {
		warnings = append(warnings, PreviewWarning{
			WorkerID: id,
			Code:     WarningNegativeNet,
			Message:  "deductions exceed gross salary",
		})
	}
	if warnings == nil {
		warnings = []PreviewWarning{}
	}
	return PreviewResponse{
		Year:     year,
		Month:    month,
		Settings: settings,
		Rows:     rows,
		Totals:   salary.Summarize(rows),
		Warnings: warnings,
	}
}
