package attendance

import "errors"

var (
	ErrAlreadyClockedIn  = errors.New("already clocked in for this date")
	ErrAlreadyClockedOut = errors.New("already clocked out for this date")
	ErrNoClockInRecord   = errors.New("no open clock-in record found")
	ErrRecordNotFound    = errors.New("attendance record not found")

	ErrNonWorkingDay     = errors.New("no working schedule on this date")
	ErrHolidayBlocked    = errors.New("attendance is blocked by a holiday")
	ErrTooEarlyToClockIn = errors.New("too early to clock in")
	ErrTooLateToClockIn  = errors.New("too late to clock in")

	ErrWfhNotApproved     = errors.New("work from home is not permitted for this date")
	ErrLocationOutOfRange = errors.New("location is outside the allowed office radius")
)
