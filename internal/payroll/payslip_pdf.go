package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const payslipContentType = "application/pdf"

func payslipKey(r *PayrollRecord) string {
	return fmt.Sprintf("payslips/%04d/%02d/%s.pdf", r.Year, r.Month, r.PayrollNumber)
}

// GeneratePayslip renders the record's payslip, stores it and records the
// public URL. Rendering again overwrites the previous file.
func (s *service) GeneratePayslip(ctx context.Context, id string) (PayrollRecordResponse, error) {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return PayrollRecordResponse{}, err
	}
	if s.storage == nil {
		return PayrollRecordResponse{}, errors.New("payslip storage is not configured")
	}

	body, err := renderPayslip(record, s.now())
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollRecordResponse{}, err
	}

	key, err := s.storage.Upload(ctx, bytes.NewReader(body), payslipKey(record), payslipContentType)
	if err != nil {
		s.logger.Error("upload payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollRecordResponse{}, err
	}
	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return PayrollRecordResponse{}, err
	}

	generatedAt := s.now()
	record.PayslipKey = &key
	record.PayslipURL = &url
	record.PayslipGeneratedAt = &generatedAt
	if err := s.repo.UpdatePayslip(ctx, record); err != nil {
		s.logger.Error("persist payslip url failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollRecordResponse{}, err
	}

	s.logger.Info("payslip generated",
		zap.String("payroll_id", id),
		zap.String("payroll_number", record.PayrollNumber),
		zap.String("key", key),
	)
	return mapToResponse(record), nil
}

func renderPayslip(r *PayrollRecord, printedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := [][2]string{
		{"Payroll No", r.PayrollNumber},
		{"Worker", fmt.Sprintf("%s (%s)", r.WorkerName, r.WorkerCode)},
		{"Period", time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")},
		{"Status", r.Status},
	}
	for _, line := range header {
		pdf.CellFormat(45, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, line[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section := func(title string, lines [][2]string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range lines {
			pdf.CellFormat(120, 7, line[0], "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, line[1], "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	section("Earnings", [][2]string{
		{fmt.Sprintf("Main salary (%s x %d days)", money(r.DailySalary), r.WorkingDays), money(r.MainSalary)},
		{"Monthly bonus", money(r.MonthlyBonus)},
		{"Late bonus", money(r.LateBonus)},
		{"Gross salary", money(r.GrossSalary)},
	})
	section("Deductions", [][2]string{
		{"Salary advance", money(r.AdvanceAmount)},
		{fmt.Sprintf("EPF (%.2f%%)", r.EPFPercentage), money(r.EPFAmount)},
		{fmt.Sprintf("ETF (%.2f%%)", r.ETFPercentage), money(r.ETFAmount)},
		{"Total deductions", money(r.TotalDeductions)},
	})

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 9, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, money(r.NetPay), "T", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, "Generated "+printedAt.Format("2006-01-02 15:04 MST"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip %s: %w", r.PayrollNumber, err)
	}
	return buf.Bytes(), nil
}

func money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
