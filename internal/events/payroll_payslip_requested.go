package events

import "time"

const PayrollPayslipRequestedTopic = "taxdesk.payroll.payslip.requested.v1"

// PayrollPayslipRequestedEvent is queued when a payroll is approved; the
// consumer renders and stores the payslip PDF.
type PayrollPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   string    `json:"payroll_id"`
	CompanyID   string    `json:"company_id"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
