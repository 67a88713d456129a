package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ComplianceStatus string

const (
	StatusPending   ComplianceStatus = "pending"
	StatusFiled     ComplianceStatus = "filed"
	StatusLate      ComplianceStatus = "late"
	StatusCompleted ComplianceStatus = "completed"
	StatusCancelled ComplianceStatus = "cancelled"
)

func ValidComplianceStatus(s string) bool {
	switch ComplianceStatus(s) {
	case StatusPending, StatusFiled, StatusLate, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Clock supplies the current time to the status resolver.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

type StatusInput struct {
	DueDate              time.Time
	FilingDate           *time.Time
	AcknowledgmentNumber string
	// Current is the stored status; only cancelled affects resolution.
	Current ComplianceStatus
}

type StatusResolver struct {
	clock Clock
}

func NewStatusResolver(clock Clock) *StatusResolver {
	if clock == nil {
		clock = SystemClock
	}
	return &StatusResolver{clock: clock}
}

// Resolve evaluates the status against the resolver's clock.
func (r *StatusResolver) Resolve(in StatusInput) ComplianceStatus {
	return ResolveAt(in, r.clock.Now())
}

func (r *StatusResolver) Now() time.Time {
	return r.clock.Now()
}

// ResolveAt evaluates the status as of now. Date comparison runs first; a present
// acknowledgment number then upgrades filed or late to completed. Cancelled is
// terminal and never derived from dates.
func ResolveAt(in StatusInput, now time.Time) ComplianceStatus {
	if in.Current == StatusCancelled {
		return StatusCancelled
	}

	due := calendarDay(in.DueDate)
	if in.FilingDate == nil || in.FilingDate.IsZero() {
		if calendarDay(now).After(due) {
			return StatusLate
		}
		return StatusPending
	}

	status := StatusFiled
	if calendarDay(*in.FilingDate).After(due) {
		status = StatusLate
	}
	if strings.TrimSpace(in.AcknowledgmentNumber) != "" {
		status = StatusCompleted
	}
	return status
}

// ComputeTotalPayable returns taxAmount + penalty + interest.
func ComputeTotalPayable(taxAmount, penalty, interest decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("tax_amount", taxAmount); err != nil {
		return decimal.Zero, err
	}
	if err := requireNonNegative("penalty", penalty); err != nil {
		return decimal.Zero, err
	}
	if err := requireNonNegative("interest", interest); err != nil {
		return decimal.Zero, err
	}
	return sum(taxAmount, penalty, interest), nil
}

// calendarDay keys t by the calendar date it carries in its own location, so
// an IST midnight due date stays on its day. Comparisons are per day.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
