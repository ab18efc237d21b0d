package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
)

// WorkingDays is the number of days a worker was on duty in a month. A
// missing row means the standard month.
type WorkingDays struct {
	WorkerID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year        int       `gorm:"primaryKey;autoIncrement:false"`
	Month       int       `gorm:"primaryKey;autoIncrement:false"`
	WorkingDays int       `gorm:"not null"`
	UpdatedBy   *string   `gorm:"type:varchar(64)"`
	UpdatedAt   time.Time
}

func (WorkingDays) TableName() string {
	return "payroll_working_days"
}

// PayrollRecord is a generated payroll for one worker and month. Money is
// stored in cents to keep rounding out of the database.
type PayrollRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayrollNumber string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	WorkerID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_worker_period"`
	Year          int       `gorm:"not null;uniqueIndex:uq_payroll_worker_period;index:idx_payroll_period"`
	Month         int       `gorm:"not null;uniqueIndex:uq_payroll_worker_period;index:idx_payroll_period"`

	// Snapshot of the worker at generation time.
	WorkerCode string `gorm:"type:varchar(20);not null"`
	WorkerName string `gorm:"type:varchar(150);not null"`

	DailySalary     int64   `gorm:"type:bigint;not null;default:0"`
	WorkingDays     int     `gorm:"not null"`
	MainSalary      int64   `gorm:"type:bigint;not null;default:0"`
	MonthlyBonus    int64   `gorm:"type:bigint;not null;default:0"`
	LateBonus       int64   `gorm:"type:bigint;not null;default:0"`
	GrossSalary     int64   `gorm:"type:bigint;not null;default:0"`
	EPFPercentage   float64 `gorm:"type:numeric(5,2);not null"`
	ETFPercentage   float64 `gorm:"type:numeric(5,2);not null"`
	EPFAmount       int64   `gorm:"type:bigint;not null;default:0"`
	ETFAmount       int64   `gorm:"type:bigint;not null;default:0"`
	AdvanceAmount   int64   `gorm:"type:bigint;not null;default:0"`
	TotalDeductions int64   `gorm:"type:bigint;not null;default:0"`
	NetPay          int64   `gorm:"type:bigint;not null;default:0"`

	Status     string  `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	CreatedBy  *string `gorm:"type:varchar(64)"`
	ApprovedBy *string `gorm:"type:varchar(64)"`

	CreatedAt          time.Time
	UpdatedAt          time.Time
	ApprovedAt         *time.Time
	PaidAt             *time.Time
	PayslipKey         *string `gorm:"type:varchar(255)"`
	PayslipURL         *string `gorm:"type:text"`
	PayslipGeneratedAt *time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}
