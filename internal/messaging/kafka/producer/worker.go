package producer

import (
	"context"
	"time"

	"dairy-erp/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50
)

type RelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// Relay drains the outbox into kafka. Worker lifecycle and payslip
// requests reach the consumer only through it.
type Relay struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	cfg    RelayConfig
	logger *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, cfg RelayConfig, logger ...*zap.Logger) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	return &Relay{repo: repo, writer: writer, cfg: cfg, logger: l.Named("kafka.relay")}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started",
		zap.Duration("poll_interval", r.cfg.PollInterval),
		zap.Int("batch_size", r.cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.ProcessBatch(ctx); err != nil {
				r.logger.Error("process outbox batch failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch publishes one batch and reports how many rows were sent.
// A failed publish is scheduled for retry and does not stop the batch.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	pending, err := r.repo.ListPending(ctx, r.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range pending {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.Int("attempt", event.RetryCount+1),
		)

		if err := publishEvent(ctx, r.writer, event); err != nil {
			log.Warn("publish outbox event failed", zap.Error(err))
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("mark outbox event failed", zap.Error(markErr))
			}
			if event.RetryCount+1 >= kafka.MaxOutboxAttempts {
				log.Error("outbox event exhausted retries")
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			// The row will be published again; consumers are idempotent.
			log.Error("mark outbox event sent", zap.Error(err))
			continue
		}
		sent++
	}

	if len(pending) > 0 {
		r.logger.Info("outbox batch relayed", zap.Int("pending", len(pending)), zap.Int("sent", sent))
	}
	return sent, nil
}
