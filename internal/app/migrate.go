package app

import (
	"dairy-erp/internal/advance"
	"dairy-erp/internal/payroll"
	"dairy-erp/internal/rbac"
	"dairy-erp/internal/salarybonus"
	"dairy-erp/internal/settings"
	"dairy-erp/internal/worker"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Tables written through raw SQL have no gorm model.
var rawSchema = []string{
	`CREATE TABLE IF NOT EXISTS counters (
		counter_type TEXT PRIMARY KEY,
		last_value   BIGINT NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id             UUID PRIMARY KEY,
		request_id     TEXT,
		aggregate_type TEXT NOT NULL,
		aggregate_id   UUID NOT NULL,
		event_type     TEXT NOT NULL,
		topic          TEXT NOT NULL,
		payload        JSONB NOT NULL,
		status         TEXT NOT NULL,
		retry_count    INT NOT NULL DEFAULT 0,
		error_message  TEXT,
		next_retry_at  TIMESTAMPTZ,
		processed_at   TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending
		ON outbox_events (status, next_retry_at, created_at)`,
}

func migrate(db *gorm.DB) error {
	log := zap.L().Named("app.migrate")

	if err := db.AutoMigrate(
		&worker.Worker{},
		&advance.Advance{},
		&salarybonus.SalaryBonus{},
		&settings.PayrollSettings{},
		&payroll.WorkingDays{},
		&payroll.PayrollRecord{},
		&rbac.Policy{},
	); err != nil {
		return err
	}

	for _, stmt := range rawSchema {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	log.Info("schema migrated")
	return nil
}
