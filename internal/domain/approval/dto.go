package approval

import (
	"strings"
	"time"

	"github.com/campushr/hris-engine-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Kind      string  `json:"kind"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason"`

	// Leave only.
	LeaveTypeID *string `json:"leave_type_id"`

	// Overtime only.
	OvertimeStart *string `json:"overtime_start"`
	OvertimeEnd   *string `json:"overtime_end"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: " + strings.Join(KindValues, ", "),
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required"})
	} else if start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required"})
	} else if end, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	switch Kind(r.Kind) {
	case KindLeave:
		if r.LeaveTypeID == nil || validator.IsEmpty(*r.LeaveTypeID) {
			errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "leave_type_id is required for leave requests"})
		}
	case KindOvertime:
		if r.OvertimeStart == nil {
			errs = append(errs, validator.ValidationError{Field: "overtime_start", Message: "overtime_start is required for overtime requests"})
		} else if _, ok := validator.IsValidTimeOfDay(*r.OvertimeStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "overtime_start", Message: "overtime_start must be in HH:MM format"})
		}
		if r.OvertimeEnd == nil {
			errs = append(errs, validator.ValidationError{Field: "overtime_end", Message: "overtime_end is required for overtime requests"})
		} else if _, ok := validator.IsValidTimeOfDay(*r.OvertimeEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "overtime_end", Message: "overtime_end must be in HH:MM format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	Note *string `json:"note"`
}

type RequestResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`

	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason,omitempty"`

	LeaveTypeID *string `json:"leave_type_id,omitempty"`
	TotalDays   *int    `json:"total_days,omitempty"`

	OvertimeStart *string `json:"overtime_start,omitempty"`
	OvertimeEnd   *string `json:"overtime_end,omitempty"`

	SupervisorID      *string `json:"supervisor_id,omitempty"`
	SupervisorActedBy *string `json:"supervisor_acted_by,omitempty"`
	SupervisorActedAt *string `json:"supervisor_acted_at,omitempty"`
	SupervisorNote    *string `json:"supervisor_note,omitempty"`

	HrActedBy *string `json:"hr_acted_by,omitempty"`
	HrActedAt *string `json:"hr_acted_at,omitempty"`
	HrNote    *string `json:"hr_note,omitempty"`

	CreatedAt string `json:"created_at"`
}
