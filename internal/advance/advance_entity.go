package advance

import (
	"time"

	"github.com/google/uuid"
)

// Advance is a salary advance paid out during a month and recovered from
// that month's payroll.
type Advance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_advance_period"`
	Year      int       `gorm:"not null;index:idx_advance_period"`
	Month     int       `gorm:"not null;index:idx_advance_period"`
	Amount    float64   `gorm:"type:numeric(12,2);not null"`
	Note      *string   `gorm:"type:varchar(255)"`
	CreatedBy *string   `gorm:"type:varchar(64)"`
	CreatedAt time.Time
}

func (Advance) TableName() string {
	return "salary_advances"
}
