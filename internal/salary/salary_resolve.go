package salary

import (
	"math"
	"strconv"
	"strings"
)

// ParseNonNegativeDecimal turns a raw form value into an amount. Empty,
// malformed, non-finite and negative input all yield 0.
func ParseNonNegativeDecimal(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return amount(v)
}

// ClampWorkingDays truncates days toward zero and bounds it to [0, 31].
func ClampWorkingDays(days float64) int {
	if math.IsNaN(days) {
		return 0
	}
	days = math.Trunc(days)
	if days < 0 {
		return 0
	}
	if days > MaxWorkingDays {
		return MaxWorkingDays
	}
	return int(days)
}

// ResolveDailySalary applies, in order: the explicit daily rate when it is
// positive, the legacy MainSalary / 26 when that is positive, otherwise 0.
func ResolveDailySalary(row WorkerSalaryRow) float64 {
	if daily := valueOf(row.DailySalary); daily > 0 {
		return daily
	}
	if legacy := amount(row.MainSalary); legacy > 0 {
		return legacy / LegacyDivisor
	}
	return 0
}

// ResolveWorkingDays returns the row's working days clamped to range, or
// the standard month when unset.
func ResolveWorkingDays(row WorkerSalaryRow) int {
	if row.WorkingDays == nil {
		return StandardWorkingDays
	}
	return ClampWorkingDays(float64(*row.WorkingDays))
}

func ResolveEPFPercentage(row WorkerSalaryRow, settings Settings) float64 {
	return resolvePercentage(row.EPFPercentage, settings.EPFPercentage)
}

func ResolveETFPercentage(row WorkerSalaryRow, settings Settings) float64 {
	return resolvePercentage(row.ETFPercentage, settings.ETFPercentage)
}

func resolvePercentage(rowValue *float64, fallback float64) float64 {
	if rowValue != nil {
		return clampPercentage(*rowValue)
	}
	return clampPercentage(fallback)
}

func clampPercentage(v float64) float64 {
	v = nonNegative(v)
	if v > 100 {
		return 100
	}
	return v
}

func valueOf(v *float64) float64 {
	if v == nil {
		return 0
	}
	return amount(*v)
}

func amount(v float64) float64 {
	return min(nonNegative(v), MaxAmount)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
