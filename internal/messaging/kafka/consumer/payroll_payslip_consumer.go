package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"dairy-erp/internal/events"
	"dairy-erp/internal/payroll"
	payrollerrors "dairy-erp/internal/payroll/errors"

	"go.uber.org/zap"
)

// ConsumePayrollPayslipRequested renders the payslip of each generated
// payroll. Rendering is idempotent, so a redelivered event only rewrites
// the same file.
func ConsumePayrollPayslipRequested(
	ctx context.Context,
	reader MessageReader,
	payrollService payroll.Service,
	logger *zap.Logger,
	backoff Backoff,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started")

	for fetchFailures := 0; ; {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			fetchFailures++
			log.Error("fetch payroll payslip message failed", zap.Int("attempt", fetchFailures), zap.Error(err))
			if backoff.wait(ctx, fetchFailures) != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			continue
		}
		fetchFailures = 0

		var event events.PayrollPayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll payslip event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		eventLog := log.With(
			zap.String("payroll_id", event.PayrollID),
			zap.String("worker_id", event.WorkerID),
		)
		err = backoff.retry(ctx, eventLog, func() error {
			_, err := payrollService.GeneratePayslip(ctx, event.PayrollID)
			// The draft was deleted before the payslip could be rendered.
			if errors.Is(err, payrollerrors.ErrPayrollNotFound) || errors.Is(err, payrollerrors.ErrInvalidPayrollID) {
				eventLog.Warn("payroll for payslip event no longer exists, skipping")
				return nil
			}
			return err
		})
		if err != nil {
			log.Info("payroll payslip consumer stopped before the event was handled",
				zap.String("payroll_id", event.PayrollID),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			eventLog.Error("commit payroll payslip message failed", zap.Error(err))
			continue
		}

		eventLog.Info("payroll payslip event handled")
	}
}
