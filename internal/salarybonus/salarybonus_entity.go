package salarybonus

import (
	"time"

	"github.com/google/uuid"
)

// SalaryBonus holds the bonuses of one worker for one month. There is at
// most one row per (worker, year, month).
type SalaryBonus struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_bonus_period"`
	Year         int       `gorm:"not null;uniqueIndex:uq_salary_bonus_period"`
	Month        int       `gorm:"not null;uniqueIndex:uq_salary_bonus_period"`
	MonthlyBonus float64   `gorm:"type:numeric(12,2);not null;default:0"`
	LateBonus    float64   `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SalaryBonus) TableName() string {
	return "salary_bonuses"
}
