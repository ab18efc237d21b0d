package salary

import "slices"

// RecalculateAll derives every computed field of every row from its base
// inputs. Rows are independent of each other; the input slice is left
// untouched and a new slice of the same length and order is returned.
//
// The resolved daily rate and working days are written back to the output
// so that feeding the result through RecalculateAll again is a no-op.
func RecalculateAll(rows []WorkerSalaryRow, settings Settings) []WorkerSalaryRow {
	out := make([]WorkerSalaryRow, len(rows))
	for i, row := range rows {
		out[i] = recalculate(row, settings)
	}
	return out
}

func recalculate(row WorkerSalaryRow, settings Settings) WorkerSalaryRow {
	daily := ResolveDailySalary(row)
	days := ResolveWorkingDays(row)

	row.DailySalary = Float(daily)
	row.WorkingDays = Int(days)
	row.MonthlyBonus = coerce(row.MonthlyBonus)
	row.LateBonus = coerce(row.LateBonus)
	row.AdvanceAmount = coerce(row.AdvanceAmount)

	row.MainSalary = daily * float64(days)
	row.GrossSalary = row.MainSalary + valueOf(row.MonthlyBonus) + valueOf(row.LateBonus)

	epf := ResolveEPFPercentage(row, settings)
	etf := ResolveETFPercentage(row, settings)
	row.EPFAmount = row.GrossSalary * epf / 100
	row.ETFAmount = row.GrossSalary * etf / 100

	row.TotalDeductions = valueOf(row.AdvanceAmount) + row.EPFAmount + row.ETFAmount
	// Not clamped: advances larger than earnings leave a negative balance.
	row.NetPay = row.GrossSalary - row.TotalDeductions

	return row
}

// coerce keeps nil as "unset" and replaces anything else with its
// sanitized value so the stored inputs agree with the derived totals.
func coerce(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(valueOf(v))
}

// SetWorkingDays returns a copy of rows where only the row for workerID has
// its working days replaced by the clamped value. Derived fields are not
// touched; callers follow up with RecalculateAll.
func SetWorkingDays(rows []WorkerSalaryRow, workerID string, days float64) []WorkerSalaryRow {
	out := slices.Clone(rows)
	clamped := ClampWorkingDays(days)
	for i := range out {
		if out[i].WorkerID == workerID {
			out[i].WorkingDays = Int(clamped)
		}
	}
	return out
}

// Totals sums the derived amounts of an already recalculated roster.
type Totals struct {
	MainSalary      float64 `json:"main_salary"`
	GrossSalary     float64 `json:"gross_salary"`
	EPFAmount       float64 `json:"epf_amount"`
	ETFAmount       float64 `json:"etf_amount"`
	TotalDeductions float64 `json:"total_deductions"`
	NetPay          float64 `json:"net_pay"`
}

func Summarize(rows []WorkerSalaryRow) Totals {
	var t Totals
	for _, row := range rows {
		t.MainSalary += row.MainSalary
		t.GrossSalary += row.GrossSalary
		t.EPFAmount += row.EPFAmount
		t.ETFAmount += row.ETFAmount
		t.TotalDeductions += row.TotalDeductions
		t.NetPay += row.NetPay
	}
	return t
}

// NegativeNet lists the worker ids whose net pay is below zero.
func NegativeNet(rows []WorkerSalaryRow) []string {
	ids := make([]string, 0)
	for _, row := range rows {
		if row.NetPay < 0 {
			ids = append(ids, row.WorkerID)
		}
	}
	return ids
}
