package events

import "time"

const EmployeeCreatedTopic = "taxdesk.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeNumber string    `json:"employee_number"`
	CompanyID      string    `json:"company_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}
