package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
)

// Record is one employee-day attendance row. Schedule references and all
// derived metrics are snapshotted at clock time so later schedule edits do
// not rewrite history.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time

	WorkingHoursID *string
	ShiftPatternID *string

	ClockInTime      *time.Time
	ClockInLatitude  *float64
	ClockInLongitude *float64
	ClockInDevice    *string

	ClockOutTime      *time.Time
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ClockOutDevice    *string

	IsWfh bool

	IsLate        bool
	LateMinutes   int
	LateDeduction decimal.Decimal

	IsEarlyLeave      bool
	EarlyLeaveMinutes int

	IsOvertime      bool
	OvertimeMinutes int

	ActualWorkMinutes   int
	RequiredWorkMinutes int

	UnderworkMinutes   int
	UnderworkDeduction decimal.Decimal

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClockedOut reports whether the day has been closed.
func (r Record) IsClockedOut() bool {
	return r.ClockOutTime != nil
}
