package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShiftType string

const (
	ShiftTypeFixed    ShiftType = "FIXED"
	ShiftTypeFlexible ShiftType = "FLEXIBLE"
)

var ShiftTypeValues = []string{
	string(ShiftTypeFixed),
	string(ShiftTypeFlexible),
}

// OffCode marks the sentinel WorkingHours record that represents a
// non-working day.
const OffCode = "WH_OFF"

// WorkingHours is a named time-of-day template (layer 1 of the shift system).
// Start/End carry only the clock component; the date part is ignored.
type WorkingHours struct {
	ID                   string
	Name                 string
	Code                 string
	Description          *string
	StartTime            *time.Time
	EndTime              *time.Time
	IsOvernight          bool
	BreakDurationMinutes int
	RequiredNetMinutes   int
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// IsOff reports whether this record is the off-day sentinel.
func (w WorkingHours) IsOff() bool {
	return w.Code == OffCode || w.StartTime == nil
}

// WorkDurationMinutes is the gross span between start and end, crossing
// midnight for overnight shifts.
func (w WorkingHours) WorkDurationMinutes() int {
	if w.StartTime == nil || w.EndTime == nil {
		return 0
	}

	startMinutes := w.StartTime.Hour()*60 + w.StartTime.Minute()
	endMinutes := w.EndTime.Hour()*60 + w.EndTime.Minute()

	if w.IsOvernight {
		return (24*60 - startMinutes) + endMinutes
	}
	return endMinutes - startMinutes
}

// NetWorkDurationMinutes is the configured required net minutes, falling
// back to gross duration minus break when not configured.
func (w WorkingHours) NetWorkDurationMinutes() int {
	if w.RequiredNetMinutes > 0 {
		return w.RequiredNetMinutes
	}
	net := w.WorkDurationMinutes() - w.BreakDurationMinutes
	if net < 0 {
		return 0
	}
	return net
}

// ShiftPackage maps each day of week to a WorkingHours reference (layer 2).
// Monday through Friday are mandatory; a nil weekend slot means off.
type ShiftPackage struct {
	ID                      string
	Name                    string
	Code                    string
	Description             *string
	MondayWorkingHoursID    string
	TuesdayWorkingHoursID   string
	WednesdayWorkingHoursID string
	ThursdayWorkingHoursID  string
	FridayWorkingHoursID    string
	SaturdayWorkingHoursID  *string
	SundayWorkingHoursID    *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
	DeletedAt               *time.Time
}

// WorkingHoursIDByDay returns the WorkingHours reference for a weekday,
// nil meaning off.
func (p ShiftPackage) WorkingHoursIDByDay(day time.Weekday) *string {
	switch day {
	case time.Monday:
		return &p.MondayWorkingHoursID
	case time.Tuesday:
		return &p.TuesdayWorkingHoursID
	case time.Wednesday:
		return &p.WednesdayWorkingHoursID
	case time.Thursday:
		return &p.ThursdayWorkingHoursID
	case time.Friday:
		return &p.FridayWorkingHoursID
	case time.Saturday:
		return p.SaturdayWorkingHoursID
	default:
		return p.SundayWorkingHoursID
	}
}

// WorkingHoursIDs returns every referenced WorkingHours identifier.
func (p ShiftPackage) WorkingHoursIDs() []string {
	ids := []string{
		p.MondayWorkingHoursID,
		p.TuesdayWorkingHoursID,
		p.WednesdayWorkingHoursID,
		p.ThursdayWorkingHoursID,
		p.FridayWorkingHoursID,
	}
	if p.SaturdayWorkingHoursID != nil {
		ids = append(ids, *p.SaturdayWorkingHoursID)
	}
	if p.SundayWorkingHoursID != nil {
		ids = append(ids, *p.SundayWorkingHoursID)
	}
	return ids
}

// ShiftPattern wraps a ShiftPackage with behavioral flags, tolerances,
// deduction rules and holiday overrides (layer 3).
type ShiftPattern struct {
	ID             string
	Name           string
	Code           string
	Description    *string
	ShiftPackageID string
	ShiftType      ShiftType

	FlexibleWindowStart   *time.Time
	FlexibleWindowEnd     *time.Time
	FlexibleRequiredHours *decimal.Decimal

	IsOvertimeAllowed     bool
	IsWfhAllowed          bool
	IsAttendanceMandatory bool

	LateToleranceMinutes       int
	EarlyLeaveToleranceMinutes int

	LateDeductionPerMinute      decimal.Decimal
	LateDeductionMaxAmount      decimal.Decimal
	UnderworkDeductionPerMinute decimal.Decimal
	UnderworkDeductionMaxAmount decimal.Decimal

	OverrideNationalHoliday bool
	OverrideCompanyHoliday  bool
	OverrideJointLeave      bool
	OverrideWeeklyLeave     bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (p ShiftPattern) IsFlexible() bool {
	return p.ShiftType == ShiftTypeFlexible
}

// HasHolidayOverride reports whether any holiday override flag is set.
func (p ShiftPattern) HasHolidayOverride() bool {
	return p.OverrideNationalHoliday || p.OverrideCompanyHoliday ||
		p.OverrideJointLeave || p.OverrideWeeklyLeave
}

// CalculateLateDeduction returns min(lateMinutes * rate, cap). A zero cap
// means uncapped. The result is never negative.
func (p ShiftPattern) CalculateLateDeduction(lateMinutes int) decimal.Decimal {
	return cappedDeduction(lateMinutes, p.LateDeductionPerMinute, p.LateDeductionMaxAmount)
}

// CalculateUnderworkDeduction returns min(underworkMinutes * rate, cap).
func (p ShiftPattern) CalculateUnderworkDeduction(underworkMinutes int) decimal.Decimal {
	return cappedDeduction(underworkMinutes, p.UnderworkDeductionPerMinute, p.UnderworkDeductionMaxAmount)
}

func cappedDeduction(minutes int, perMinute, maxAmount decimal.Decimal) decimal.Decimal {
	if minutes <= 0 || perMinute.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	deduction := perMinute.Mul(decimal.NewFromInt(int64(minutes)))
	if maxAmount.GreaterThan(decimal.Zero) && deduction.GreaterThan(maxAmount) {
		return maxAmount
	}
	return deduction
}

// EmployeeShiftSetting is a time-bounded assignment of a ShiftPattern to an
// employee. At most one setting per employee has a nil EffectiveTo.
type EmployeeShiftSetting struct {
	ID             string
	EmployeeID     string
	ShiftPatternID string
	EffectiveFrom  time.Time
	EffectiveTo    *time.Time
	Reason         *string
	Notes          *string
	CreatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// CoversDate reports whether the setting is active on the given date.
func (s EmployeeShiftSetting) CoversDate(date time.Time) bool {
	if date.Before(s.EffectiveFrom) {
		return false
	}
	return s.EffectiveTo == nil || !date.After(*s.EffectiveTo)
}

// EmployeeShiftSchedule is a single-date override for one employee. Nil
// override fields fall back to the assigned pattern's values.
type EmployeeShiftSchedule struct {
	ID                            string
	EmployeeID                    string
	ScheduleDate                  time.Time
	WorkingHoursID                *string
	OverrideIsWfh                 *bool
	OverrideIsOvertimeAllowed     *bool
	OverrideIsAttendanceMandatory *bool
	Notes                         *string
	CreatedBy                     *string
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
	DeletedAt                     *time.Time
}

// Resolution is the merged effective schedule for one employee on one date.
// It is the single source of truth consumed by the clock engine and the
// read-only schedule views.
type Resolution struct {
	EmployeeID            string
	Date                  time.Time
	WorkingHours          *WorkingHours
	ShiftPattern          *ShiftPattern
	IsWorkingDay          bool
	IsOverride            bool
	IsWfhAllowed          bool
	IsOvertimeAllowed     bool
	IsAttendanceMandatory bool
	LateToleranceMinutes  int
	OverrideNotes         *string
}

// StartTime returns the schedule start anchored on the resolution date.
func (r Resolution) StartTime() *time.Time {
	return r.anchored(func(w WorkingHours) *time.Time { return w.StartTime }, 0)
}

// EndTime returns the schedule end anchored on the resolution date,
// shifted to the next day for overnight shifts.
func (r Resolution) EndTime() *time.Time {
	extraDays := 0
	if r.IsOvernight() {
		extraDays = 1
	}
	return r.anchored(func(w WorkingHours) *time.Time { return w.EndTime }, extraDays)
}

func (r Resolution) anchored(pick func(WorkingHours) *time.Time, extraDays int) *time.Time {
	if r.WorkingHours == nil {
		return nil
	}
	clock := pick(*r.WorkingHours)
	if clock == nil {
		return nil
	}
	t := time.Date(
		r.Date.Year(), r.Date.Month(), r.Date.Day()+extraDays,
		clock.Hour(), clock.Minute(), 0, 0,
		r.Date.Location(),
	)
	return &t
}

func (r Resolution) IsOvernight() bool {
	return r.WorkingHours != nil && r.WorkingHours.IsOvernight
}

// RequiredWorkMinutes is the net required minutes of the effective schedule.
func (r Resolution) RequiredWorkMinutes() int {
	if r.WorkingHours == nil {
		return 0
	}
	return r.WorkingHours.NetWorkDurationMinutes()
}
