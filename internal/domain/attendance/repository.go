package attendance

import (
	"context"
	"time"
)

// Repository persists attendance records. The backing table enforces a
// unique (employee_id, date) pair.
type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)
	Update(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// GetOpenByEmployee returns the most recent record with a clock-in but
	// no clock-out, or nil. Needed for overnight shifts where clock-out
	// lands on the calendar day after the record's date.
	GetOpenByEmployee(ctx context.Context, employeeID string) (*Record, error)

	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}
