package salary

const (
	// StandardWorkingDays is assumed when a row carries no working days.
	StandardWorkingDays = 26

	// LegacyDivisor converts a legacy monthly salary into a daily rate.
	LegacyDivisor = 26

	MaxWorkingDays = 31

	// MaxAmount caps every monetary input so derived totals stay finite.
	MaxAmount = 1e12

	DefaultEPFPercentage = 8.00
	DefaultETFPercentage = 3.00
)

// WorkerSalaryRow is one roster line of the payroll preview. The pointer
// fields are base inputs where nil means "not provided"; the plain float
// fields below them are derived and overwritten by RecalculateAll.
//
// MainSalary doubles as the legacy input for records created before daily
// rates existed: when DailySalary is unset it is read once to derive the
// daily rate, then replaced by the recomputed value.
type WorkerSalaryRow struct {
	WorkerID   string `json:"worker_id"`
	WorkerCode string `json:"worker_code,omitempty"`
	WorkerName string `json:"worker_name,omitempty"`

	DailySalary   *float64 `json:"daily_salary"`
	WorkingDays   *int     `json:"working_days"`
	MonthlyBonus  *float64 `json:"monthly_bonus"`
	LateBonus     *float64 `json:"late_bonus"`
	AdvanceAmount *float64 `json:"advance_amount"`
	EPFPercentage *float64 `json:"epf_percentage"`
	ETFPercentage *float64 `json:"etf_percentage"`

	MainSalary      float64 `json:"main_salary"`
	GrossSalary     float64 `json:"gross_salary"`
	EPFAmount       float64 `json:"epf_amount"`
	ETFAmount       float64 `json:"etf_amount"`
	TotalDeductions float64 `json:"total_deductions"`
	NetPay          float64 `json:"net_pay"`
}

// Settings holds the company-wide statutory rates used when a worker has
// no personal EPF/ETF percentage.
type Settings struct {
	EPFPercentage float64 `json:"epf_percentage"`
	ETFPercentage float64 `json:"etf_percentage"`
}

func DefaultSettings() Settings {
	return Settings{
		EPFPercentage: DefaultEPFPercentage,
		ETFPercentage: DefaultETFPercentage,
	}
}

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}
