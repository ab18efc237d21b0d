package consumer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Backoff paces retries of a failed fetch or a failed message. A failed
// message is retried in place: committing a later offset would also
// commit it, so nothing after it is read until it succeeds.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

var DefaultBackoff = Backoff{Initial: time.Second, Max: time.Minute}

func (b Backoff) delay(attempt int) time.Duration {
	if b.Initial <= 0 {
		b.Initial = DefaultBackoff.Initial
	}
	if b.Max < b.Initial {
		b.Max = b.Initial
	}
	d := b.Initial
	for i := 1; i < attempt && d < b.Max; i++ {
		d *= 2
	}
	return min(d, b.Max)
}

// wait sleeps for the attempt's delay and reports ctx cancellation.
func (b Backoff) wait(ctx context.Context, attempt int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := time.NewTimer(b.delay(attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retry runs handle until it succeeds or ctx is cancelled.
func (b Backoff) retry(ctx context.Context, log *zap.Logger, handle func() error) error {
	for attempt := 1; ; attempt++ {
		err := handle()
		if err == nil {
			return nil
		}
		log.Error("message handling failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", b.delay(attempt)),
			zap.Error(err),
		)
		if err := b.wait(ctx, attempt); err != nil {
			return err
		}
	}
}
