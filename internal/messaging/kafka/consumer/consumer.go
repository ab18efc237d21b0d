package consumer

import (
	"context"
	"encoding/json"
	"time"

	"dairy-erp/internal/events"
	"dairy-erp/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeWorkerLifecycle seeds the standard working days for a newly
// created worker in the month the worker was created.
func ConsumeWorkerLifecycle(
	ctx context.Context,
	reader MessageReader,
	payrollService payroll.Service,
	logger *zap.Logger,
	backoff Backoff,
) {
	log := logger.Named("kafka.consumer.worker_lifecycle")
	log.Info("worker lifecycle consumer started")

	for fetchFailures := 0; ; {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("worker lifecycle consumer stopped")
				return
			}
			fetchFailures++
			log.Error("fetch worker lifecycle message failed", zap.Int("attempt", fetchFailures), zap.Error(err))
			if backoff.wait(ctx, fetchFailures) != nil {
				log.Info("worker lifecycle consumer stopped")
				return
			}
			continue
		}
		fetchFailures = 0

		var event events.WorkerCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode worker_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if event.EventType != events.EventTypeWorkerCreated {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		at := event.OccurredAt
		if at.IsZero() {
			at = time.Now()
		}
		at = at.UTC()

		eventLog := log.With(
			zap.String("worker_id", event.WorkerID),
			zap.String("request_id", event.RequestID),
		)
		err = backoff.retry(ctx, eventLog, func() error {
			return payrollService.EnsureWorkingDays(ctx, event.WorkerID, at.Year(), int(at.Month()))
		})
		if err != nil {
			log.Info("worker lifecycle consumer stopped before the event was handled",
				zap.String("worker_id", event.WorkerID),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit worker lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("working days seeded from worker_created event",
			zap.String("worker_id", event.WorkerID),
			zap.String("worker_code", event.WorkerCode),
			zap.Int("year", at.Year()),
			zap.Int("month", int(at.Month())),
		)
	}
}
