package scope

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Period restricts a query to rows of one payroll period.
func Period(year, month int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("year = ? AND month = ?", year, month)
	}
}

// Worker restricts a query to one worker.
func Worker(workerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("worker_id = ?", workerID)
	}
}

// Conn returns a session bound to ctx that runs on tx when one is set, so
// repositories created through WithTx join the service's transaction.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.WithContext(ctx)
	if tx != nil {
		session.Statement.ConnPool = tx
	}
	return session
}
