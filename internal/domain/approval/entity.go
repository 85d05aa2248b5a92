package approval

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPendingSupervisor    Status = "PENDING_SUPERVISOR"
	StatusPendingHR            Status = "PENDING_HR"
	StatusApproved             Status = "APPROVED"
	StatusRejectedBySupervisor Status = "REJECTED_BY_SUPERVISOR"
	StatusRejectedByHR         Status = "REJECTED_BY_HR"
	StatusCancelled            Status = "CANCELLED"
)

// IsPending reports whether the request can still be acted on.
func (s Status) IsPending() bool {
	return s == StatusPendingSupervisor || s == StatusPendingHR
}

// IsTerminal reports whether the request has reached a final state.
func (s Status) IsTerminal() bool {
	return !s.IsPending()
}

type Kind string

const (
	KindLeave    Kind = "leave"
	KindOvertime Kind = "overtime"
	KindWfh      Kind = "wfh"
)

var KindValues = []string{
	string(KindLeave),
	string(KindOvertime),
	string(KindWfh),
}

// Request is one submission flowing through the two-level approval chain.
// All three kinds share one table and one state machine; kind-specific
// payload lives in the nullable columns.
type Request struct {
	ID         string
	EmployeeID string
	Kind       Kind
	Status     Status

	StartDate time.Time
	EndDate   time.Time
	Reason    *string

	// Leave only.
	LeaveTypeID *string
	TotalDays   *int

	// Overtime only.
	OvertimeStart *time.Time
	OvertimeEnd   *time.Time

	// Supervisor resolved at submission; nil means the chain starts at HR.
	SupervisorID *string

	SupervisorActedBy *string
	SupervisorActedAt *time.Time
	SupervisorNote    *string

	HrActedBy *string
	HrActedAt *time.Time
	HrNote    *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoversDate reports whether date falls inside [StartDate, EndDate].
func (r Request) CoversDate(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Actor identifies who is performing an approval action.
type Actor struct {
	EmployeeID string
	Role       string
}

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
)

func (a Actor) IsHR() bool {
	return a.Role == RoleHR
}

// LeaveBalance tracks an employee's remaining allocation for one leave type.
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	Allocated   decimal.Decimal
	Used        decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Remaining is the allocation still available.
func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.Allocated.Sub(b.Used)
}
