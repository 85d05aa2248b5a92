package shift

import (
	"context"
	"time"
)

type WorkingHoursRepository interface {
	Create(ctx context.Context, wh WorkingHours) (WorkingHours, error)
	GetByID(ctx context.Context, id string) (WorkingHours, error)
	List(ctx context.Context) ([]WorkingHours, error)
	IsReferencedByPackage(ctx context.Context, id string) (bool, error)
}

type ShiftPackageRepository interface {
	Create(ctx context.Context, pkg ShiftPackage) (ShiftPackage, error)
	GetByID(ctx context.Context, id string) (ShiftPackage, error)
	List(ctx context.Context) ([]ShiftPackage, error)
}

type ShiftPatternRepository interface {
	Create(ctx context.Context, pattern ShiftPattern) (ShiftPattern, error)
	GetByID(ctx context.Context, id string) (ShiftPattern, error)
	List(ctx context.Context) ([]ShiftPattern, error)
}

// ShiftSettingRepository manages time-bounded pattern assignments.
type ShiftSettingRepository interface {
	Create(ctx context.Context, setting EmployeeShiftSetting) (EmployeeShiftSetting, error)

	// FindActiveByEmployeeAndDate returns the setting whose
	// [effectiveFrom, effectiveTo] range covers date, or nil.
	FindActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*EmployeeShiftSetting, error)

	// FindOpenByEmployee returns the setting with a nil effectiveTo, or nil.
	FindOpenByEmployee(ctx context.Context, employeeID string) (*EmployeeShiftSetting, error)

	// CloseSetting sets effectiveTo on an open setting.
	CloseSetting(ctx context.Context, id string, effectiveTo time.Time) error

	ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeShiftSetting, error)
}

// ShiftScheduleRepository manages single-date overrides. At most one
// non-deleted override exists per (employee, date).
type ShiftScheduleRepository interface {
	Create(ctx context.Context, schedule EmployeeShiftSchedule) (EmployeeShiftSchedule, error)
	Update(ctx context.Context, schedule EmployeeShiftSchedule) (EmployeeShiftSchedule, error)
	GetByID(ctx context.Context, id string) (EmployeeShiftSchedule, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*EmployeeShiftSchedule, error)
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]EmployeeShiftSchedule, error)
	SoftDelete(ctx context.Context, id string) error
}
