package payroll

import "dairy-erp/internal/salary"

type PeriodQuery struct {
	Year  int `form:"year" binding:"required,gte=2000,lte=2100"`
	Month int `form:"month" binding:"required,gte=1,lte=12"`
}

type MonthlyReportResponse struct {
	WorkerID     string  `json:"worker_id"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	WorkingDays  int     `json:"working_days"`
	MonthlyBonus float64 `json:"monthly_bonus"`
	LateBonus    float64 `json:"late_bonus"`
	TotalAdvance float64 `json:"total_advance"`
}

// UpdateWorkingDaysRequest takes a decimal so that fractional or
// out-of-range input is clamped instead of rejected.
type UpdateWorkingDaysRequest struct {
	WorkerID    string   `json:"worker_id" binding:"required,uuid"`
	Year        int      `json:"year" binding:"required,gte=2000,lte=2100"`
	Month       int      `json:"month" binding:"required,gte=1,lte=12"`
	WorkingDays *float64 `json:"working_days" binding:"required"`
}

const (
	WarningNegativeNet       = "negative_net"
	WarningReportUnavailable = "report_unavailable"
)

type PreviewWarning struct {
	WorkerID string `json:"worker_id"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

type PreviewResponse struct {
	Year     int                      `json:"year"`
	Month    int                      `json:"month"`
	Settings salary.Settings          `json:"settings"`
	Rows     []salary.WorkerSalaryRow `json:"rows"`
	Totals   salary.Totals            `json:"totals"`
	Warnings []PreviewWarning         `json:"warnings"`
}

type GeneratePayrollRequest struct {
	WorkerID    string   `json:"worker_id" binding:"required,uuid"`
	Year        int      `json:"year" binding:"required,gte=2000,lte=2100"`
	Month       int      `json:"month" binding:"required,gte=1,lte=12"`
	WorkingDays *float64 `json:"working_days"`
}

type GetPayrollRecordsFilterRequest struct {
	Year   int    `form:"year" binding:"omitempty,gte=2000,lte=2100"`
	Month  int    `form:"month" binding:"omitempty,gte=1,lte=12"`
	Status string `form:"status" binding:"omitempty,oneof=DRAFT APPROVED PAID"`
}

type PayrollRecordResponse struct {
	ID                 string  `json:"id"`
	PayrollNumber      string  `json:"payroll_number"`
	WorkerID           string  `json:"worker_id"`
	WorkerCode         string  `json:"worker_code"`
	WorkerName         string  `json:"worker_name"`
	Year               int     `json:"year"`
	Month              int     `json:"month"`
	DailySalary        float64 `json:"daily_salary"`
	WorkingDays        int     `json:"working_days"`
	MainSalary         float64 `json:"main_salary"`
	MonthlyBonus       float64 `json:"monthly_bonus"`
	LateBonus          float64 `json:"late_bonus"`
	GrossSalary        float64 `json:"gross_salary"`
	EPFPercentage      float64 `json:"epf_percentage"`
	ETFPercentage      float64 `json:"etf_percentage"`
	EPFAmount          float64 `json:"epf_amount"`
	ETFAmount          float64 `json:"etf_amount"`
	AdvanceAmount      float64 `json:"advance_amount"`
	TotalDeductions    float64 `json:"total_deductions"`
	NetPay             float64 `json:"net_pay"`
	Status             string  `json:"status"`
	CreatedBy          *string `json:"created_by,omitempty"`
	ApprovedBy         *string `json:"approved_by,omitempty"`
	ApprovedAt         *string `json:"approved_at,omitempty"`
	PaidAt             *string `json:"paid_at,omitempty"`
	PayslipURL         *string `json:"payslip_url,omitempty"`
	PayslipGeneratedAt *string `json:"payslip_generated_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}
