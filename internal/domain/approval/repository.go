package approval

import (
	"context"
	"time"
)

// RequestRepository persists approval requests across all kinds.
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// Transition atomically moves the request from expected to next,
	// recording the acting fields. It returns ErrAlreadyProcessed when the
	// stored status no longer matches expected.
	Transition(ctx context.Context, id string, expected, next Status, update TransitionUpdate) (Request, error)

	// HasOverlapping reports whether a pending or approved request of the
	// same kind overlaps [start, end] for the employee.
	HasOverlapping(ctx context.Context, employeeID string, kind Kind, start, end time.Time) (bool, error)

	// HasApprovedWfh reports whether an approved WFH request covers date.
	HasApprovedWfh(ctx context.Context, employeeID string, date time.Time) (bool, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// ListPendingForSupervisor returns PENDING_SUPERVISOR requests whose
	// stored supervisor is supervisorID.
	ListPendingForSupervisor(ctx context.Context, supervisorID string) ([]Request, error)

	// ListPendingForHR returns every PENDING_HR request.
	ListPendingForHR(ctx context.Context) ([]Request, error)
}

// TransitionUpdate carries the acting fields written alongside a status
// transition.
type TransitionUpdate struct {
	ActedBy     string
	ActedAt     time.Time
	Note        *string
	CancelledAt *time.Time
}

// LeaveBalanceRepository manages per-year leave allocations.
type LeaveBalanceRepository interface {
	GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)

	// AddUsed increments the used amount by days (negative days reimburse).
	AddUsed(ctx context.Context, id string, days int) error
}
