package attendance

import (
	"context"
	"time"
)

// Service is the attendance clock engine.
type Service interface {
	// ClockIn validates the employee's effective schedule, holidays, WFH
	// permission and geofence, then creates the day's record with lateness
	// computed against the tolerant start.
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest, now time.Time) (Record, error)

	// ClockOut closes the open record and snapshots early-leave, overtime
	// and underwork metrics.
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest, now time.Time) (Record, error)

	GetToday(ctx context.Context, employeeID string, now time.Time) (*Record, error)
	ListByRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}

// HolidayLookup answers whether a date is blocked for an employee. The
// attendance engine only needs the three override-checkable flags.
type HolidayLookup interface {
	// HolidayFlags returns (isNational, isCompany, isJointLeave) for date.
	HolidayFlags(ctx context.Context, date time.Time) (bool, bool, bool, error)
}

// OfficeLocationProvider supplies the geofence center and radius used to
// validate on-site clock-ins.
type OfficeLocationProvider interface {
	OfficeLocation(ctx context.Context) (latitude, longitude, radiusMeters float64, err error)
}

// WfhApprovalLookup answers whether an approved WFH request covers a date.
type WfhApprovalLookup interface {
	HasApprovedWfh(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
