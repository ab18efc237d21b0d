package events

import "time"

const PayrollPayslipRequestedTopic = "dairy.payroll.payslip.requested.v1"

const EventTypePayrollPayslipRequested = "payroll_payslip_requested"

type PayrollPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   string    `json:"payroll_id"`
	WorkerID    string    `json:"worker_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
