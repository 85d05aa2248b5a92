package shift

import (
	"context"
	"time"
)

// Service resolves effective schedules and manages the shift catalog.
type Service interface {
	// Resolve computes the effective schedule for one employee on one date,
	// merging the assigned pattern with any single-date override.
	Resolve(ctx context.Context, employeeID string, date time.Time) (Resolution, error)

	// ResolveRange resolves every date in [from, to] inclusive.
	ResolveRange(ctx context.Context, employeeID string, from, to time.Time) ([]Resolution, error)

	// AssignShiftPattern creates a new open-ended setting, closing any prior
	// open setting at effectiveFrom minus one day.
	AssignShiftPattern(ctx context.Context, req AssignShiftPatternRequest, createdBy string) (EmployeeShiftSetting, error)

	ListShiftSettings(ctx context.Context, employeeID string) ([]EmployeeShiftSetting, error)

	// CreateOverrideSchedule upserts the single-date override for
	// (employee, date).
	CreateOverrideSchedule(ctx context.Context, req CreateOverrideScheduleRequest, createdBy string) (EmployeeShiftSchedule, error)

	DeleteOverrideSchedule(ctx context.Context, id string) error

	CreateWorkingHours(ctx context.Context, req CreateWorkingHoursRequest) (WorkingHours, error)
	ListWorkingHours(ctx context.Context) ([]WorkingHours, error)

	CreateShiftPackage(ctx context.Context, req CreateShiftPackageRequest) (ShiftPackage, error)
	ListShiftPackages(ctx context.Context) ([]ShiftPackage, error)

	CreateShiftPattern(ctx context.Context, req CreateShiftPatternRequest) (ShiftPattern, error)
	ListShiftPatterns(ctx context.Context) ([]ShiftPattern, error)
}
