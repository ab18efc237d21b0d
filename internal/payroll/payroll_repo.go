package payroll

import (
	"context"
	"database/sql"
	"errors"

	"dairy-erp/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStatusChanged means the record left the expected status between the
// read and the write.
var ErrStatusChanged = errors.New("payroll status changed concurrently")

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// FindWorkingDays returns nil without error when nothing is stored.
	FindWorkingDays(ctx context.Context, workerID string, year, month int) (*WorkingDays, error)
	UpsertWorkingDays(ctx context.Context, wd *WorkingDays) error
	// CreateWorkingDaysIfAbsent leaves an existing row untouched.
	CreateWorkingDaysIfAbsent(ctx context.Context, wd *WorkingDays) error

	CreateRecord(ctx context.Context, record *PayrollRecord) error
	ExistsForWorkerPeriod(ctx context.Context, workerID string, year, month int) (bool, error)
	FindRecords(ctx context.Context, filter GetPayrollRecordsFilterRequest) ([]PayrollRecord, error)
	FindRecordByID(ctx context.Context, id string) (*PayrollRecord, error)
	// UpdateStatus writes the status columns only while the stored status
	// is still from.
	UpdateStatus(ctx context.Context, record *PayrollRecord, from string) error
	UpdatePayslip(ctx context.Context, record *PayrollRecord) error
	// DeleteRecord removes the record only while it has the given status.
	DeleteRecord(ctx context.Context, id, status string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return scope.Conn(ctx, r.db, r.tx)
}

func (r *repository) FindWorkingDays(ctx context.Context, workerID string, year, month int) (*WorkingDays, error) {
	var wd WorkingDays
	err := r.conn(ctx).
		Scopes(scope.Worker(workerID), scope.Period(year, month)).
		First(&wd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

func (r *repository) UpsertWorkingDays(ctx context.Context, wd *WorkingDays) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "worker_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"working_days", "updated_by", "updated_at"}),
		}).
		Create(wd).Error
}

func (r *repository) CreateWorkingDaysIfAbsent(ctx context.Context, wd *WorkingDays) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(wd).Error
}

func (r *repository) CreateRecord(ctx context.Context, record *PayrollRecord) error {
	return r.conn(ctx).Create(record).Error
}

func (r *repository) ExistsForWorkerPeriod(ctx context.Context, workerID string, year, month int) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&PayrollRecord{}).
		Scopes(scope.Worker(workerID), scope.Period(year, month)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindRecords(ctx context.Context, filter GetPayrollRecordsFilterRequest) ([]PayrollRecord, error) {
	var records []PayrollRecord
	q := r.conn(ctx).Model(&PayrollRecord{})
	if filter.Year > 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Month > 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("year DESC, month DESC, worker_code ASC").Find(&records).Error
	return records, err
}

func (r *repository) FindRecordByID(ctx context.Context, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	if err := r.conn(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) UpdateStatus(ctx context.Context, record *PayrollRecord, from string) error {
	res := r.conn(ctx).
		Model(&PayrollRecord{}).
		Where("id = ? AND status = ?", record.ID, from).
		Updates(map[string]any{
			"status":      record.Status,
			"approved_at": record.ApprovedAt,
			"approved_by": record.ApprovedBy,
			"paid_at":     record.PaidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *repository) UpdatePayslip(ctx context.Context, record *PayrollRecord) error {
	res := r.conn(ctx).
		Model(&PayrollRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"payslip_key":          record.PayslipKey,
			"payslip_url":          record.PayslipURL,
			"payslip_generated_at": record.PayslipGeneratedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteRecord(ctx context.Context, id, status string) error {
	res := r.conn(ctx).Delete(&PayrollRecord{}, "id = ? AND status = ?", id, status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}
