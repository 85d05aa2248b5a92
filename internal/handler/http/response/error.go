package response

import (
	"errors"
	"net/http"

	"github.com/campushr/hris-engine-go/internal/domain/approval"
	"github.com/campushr/hris-engine-go/internal/domain/attendance"
	"github.com/campushr/hris-engine-go/internal/domain/employee"
	"github.com/campushr/hris-engine-go/internal/domain/shift"
	"github.com/campushr/hris-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrWorkingHoursNotFound):
		NotFound(w, "Working hours not found")
	case errors.Is(err, shift.ErrShiftPackageNotFound):
		NotFound(w, "Shift package not found")
	case errors.Is(err, shift.ErrShiftPatternNotFound):
		NotFound(w, "Shift pattern not found")
	case errors.Is(err, shift.ErrShiftSettingNotFound):
		NotFound(w, "Shift setting not found")
	case errors.Is(err, shift.ErrOverrideNotFound):
		NotFound(w, "Override schedule not found")
	case errors.Is(err, shift.ErrWorkingHoursInUse):
		Conflict(w, "Working hours is referenced by a shift package")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in for this date")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out for this date")
	case errors.Is(err, attendance.ErrNoClockInRecord):
		BadRequest(w, "No open clock-in record found", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNonWorkingDay):
		BadRequest(w, "No working schedule on this date", nil)
	case errors.Is(err, attendance.ErrHolidayBlocked):
		BadRequest(w, "Attendance is blocked by a holiday", nil)
	case errors.Is(err, attendance.ErrTooEarlyToClockIn):
		BadRequest(w, "Too early to clock in", nil)
	case errors.Is(err, attendance.ErrTooLateToClockIn):
		BadRequest(w, "Too late to clock in", nil)
	case errors.Is(err, attendance.ErrWfhNotApproved):
		Forbidden(w, "Work from home is not permitted for this date")
	case errors.Is(err, attendance.ErrLocationOutOfRange):
		Forbidden(w, "Location is outside the allowed office radius")

	// Approval domain errors
	case errors.Is(err, approval.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, approval.ErrNotPendingSupervisor):
		Conflict(w, "Request is not pending supervisor approval")
	case errors.Is(err, approval.ErrNotPendingHR):
		Conflict(w, "Request is not pending HR approval")
	case errors.Is(err, approval.ErrAlreadyProcessed):
		Conflict(w, "Request was already processed")
	case errors.Is(err, approval.ErrNotAuthorized):
		Forbidden(w, "Not authorized to act on this request")
	case errors.Is(err, approval.ErrSelfApproval):
		Forbidden(w, "Cannot approve your own request")
	case errors.Is(err, approval.ErrNotRequester):
		Forbidden(w, "Only the requester can cancel")
	case errors.Is(err, approval.ErrDuplicateRequest):
		Conflict(w, "An overlapping request already exists")
	case errors.Is(err, approval.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, approval.ErrLeaveBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, approval.ErrNotApproved):
		Conflict(w, "Request is not approved")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
