package settings

import "time"

// singletonID is the primary key of the only payroll_settings row.
const singletonID = 1

type PayrollSettings struct {
	ID            int     `gorm:"primaryKey;autoIncrement:false"`
	EPFPercentage float64 `gorm:"type:numeric(5,2);not null"`
	ETFPercentage float64 `gorm:"type:numeric(5,2);not null"`
	UpdatedBy     *string `gorm:"type:varchar(64)"`
	UpdatedAt     time.Time
}

func (PayrollSettings) TableName() string {
	return "payroll_settings"
}
