package engine_test

import (
	"testing"
	"time"

	"go-taxdesk/internal/engine"

	"github.com/stretchr/testify/assert"
)

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestStatusResolver_Resolve(t *testing.T) {
	due := date("2024-02-11")

	tests := []struct {
		name string
		now  time.Time
		in   engine.StatusInput
		want engine.ComplianceStatus
	}{
		{
			name: "unfiled after due date is late",
			now:  date("2024-02-12"),
			in:   engine.StatusInput{DueDate: due},
			want: engine.StatusLate,
		},
		{
			name: "unfiled before due date is pending",
			now:  date("2024-02-01"),
			in:   engine.StatusInput{DueDate: due},
			want: engine.StatusPending,
		},
		{
			name: "unfiled late on due day is still pending",
			now:  due.Add(23*time.Hour + 59*time.Minute),
			in:   engine.StatusInput{DueDate: due},
			want: engine.StatusPending,
		},
		{
			name: "filed before due date",
			now:  date("2024-03-01"),
			in:   engine.StatusInput{DueDate: due, FilingDate: ptrTime(date("2024-02-10"))},
			want: engine.StatusFiled,
		},
		{
			name: "filed on due date",
			now:  date("2024-03-01"),
			in:   engine.StatusInput{DueDate: due, FilingDate: ptrTime(due.Add(18 * time.Hour))},
			want: engine.StatusFiled,
		},
		{
			name: "filed after due date",
			now:  date("2024-03-01"),
			in:   engine.StatusInput{DueDate: due, FilingDate: ptrTime(date("2024-02-15"))},
			want: engine.StatusLate,
		},
		{
			name: "acknowledged on time",
			now:  date("2024-03-01"),
			in:   engine.StatusInput{DueDate: due, FilingDate: ptrTime(date("2024-02-10")), AcknowledgmentNumber: "ACK123"},
			want: engine.StatusCompleted,
		},
		{
			name: "acknowledged after due date",
			now:  date("2024-03-01"),
			in:   engine.StatusInput{DueDate: due, FilingDate: ptrTime(date("2024-02-15")), AcknowledgmentNumber: "ACK123"},
			want: engine.StatusCompleted,
		},
		{
			name: "blank acknowledgment is ignored",
			now:  date("2024-03-01"),
			in:   engine.StatusInput{DueDate: due, FilingDate: ptrTime(date("2024-02-10")), AcknowledgmentNumber: "   "},
			want: engine.StatusFiled,
		},
		{
			name: "acknowledgment without filing date does not complete",
			now:  date("2024-02-01"),
			in:   engine.StatusInput{DueDate: due, AcknowledgmentNumber: "ACK123"},
			want: engine.StatusPending,
		},
		{
			name: "cancelled is terminal",
			now:  date("2024-03-01"),
			in:   engine.StatusInput{DueDate: due, FilingDate: ptrTime(date("2024-02-10")), AcknowledgmentNumber: "ACK123", Current: engine.StatusCancelled},
			want: engine.StatusCancelled,
		},
		{
			name: "stored late is re-derived",
			now:  date("2024-02-01"),
			in:   engine.StatusInput{DueDate: due, Current: engine.StatusLate},
			want: engine.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := engine.NewStatusResolver(engine.FixedClock(tt.now))
			assert.Equal(t, tt.want, r.Resolve(tt.in))
			assert.Equal(t, tt.want, r.Resolve(tt.in))
		})
	}
}

func TestResolveAt_UsesCalendarDayOfEachValue(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	due := time.Date(2024, time.February, 11, 0, 0, 0, 0, ist)

	filedOnDueDay := time.Date(2024, time.February, 11, 10, 0, 0, 0, ist)
	assert.Equal(t, engine.StatusFiled, engine.ResolveAt(
		engine.StatusInput{DueDate: due, FilingDate: &filedOnDueDay},
		date("2024-03-01"),
	))

	assert.Equal(t, engine.StatusPending, engine.ResolveAt(
		engine.StatusInput{DueDate: due},
		time.Date(2024, time.February, 11, 23, 0, 0, 0, ist),
	))
	assert.Equal(t, engine.StatusLate, engine.ResolveAt(
		engine.StatusInput{DueDate: due},
		time.Date(2024, time.February, 12, 0, 30, 0, 0, ist),
	))
}

func TestStatusResolver_DefaultsToSystemClock(t *testing.T) {
	r := engine.NewStatusResolver(nil)
	got := r.Resolve(engine.StatusInput{DueDate: time.Now().AddDate(0, 0, 7)})
	assert.Equal(t, engine.StatusPending, got)
}

func TestComputeTotalPayable(t *testing.T) {
	total, err := engine.ComputeTotalPayable(d("10000"), d("250.50"), d("99.5"))
	assert.NoError(t, err)
	assert.True(t, total.Equal(d("10350")))

	_, err = engine.ComputeTotalPayable(d("1"), d("-1"), d("0"))
	assertValidationField(t, err, "penalty")

	_, err = engine.ComputeTotalPayable(d("1"), d("0"), d("-1"))
	assertValidationField(t, err, "interest")
}

func TestValidComplianceStatus(t *testing.T) {
	assert.True(t, engine.ValidComplianceStatus("completed"))
	assert.False(t, engine.ValidComplianceStatus("done"))
}
