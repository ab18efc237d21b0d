package worker

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Worker struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkerCode string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_worker_code"`
	FullName   string    `gorm:"type:varchar(150);not null"`
	Phone      *string   `gorm:"type:varchar(30)"`

	// DailySalary is the pay rate per working day. MainSalary is the
	// monthly figure kept for records created before daily rates existed.
	DailySalary float64 `gorm:"type:numeric(12,2);not null;default:0"`
	MainSalary  float64 `gorm:"type:numeric(12,2);not null;default:0"`

	// Nil means "use the payroll settings".
	EPFPercentage *float64 `gorm:"type:numeric(5,2)"`
	ETFPercentage *float64 `gorm:"type:numeric(5,2)"`

	IsActive  bool `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
