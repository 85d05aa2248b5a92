package shift

import (
	"strings"

	"github.com/campushr/hris-engine-go/internal/pkg/validator"
)

type CreateWorkingHoursRequest struct {
	Name                 string  `json:"name"`
	Code                 string  `json:"code"`
	Description          *string `json:"description"`
	StartTime            *string `json:"start_time"`
	EndTime              *string `json:"end_time"`
	IsOvernight          bool    `json:"is_overnight"`
	BreakDurationMinutes int     `json:"break_duration_minutes"`
	RequiredNetMinutes   int     `json:"required_net_minutes"`
}

func (r *CreateWorkingHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	// The off sentinel is the only record allowed to omit times.
	if r.Code != OffCode {
		if r.StartTime == nil {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time is required"})
		} else if _, ok := validator.IsValidTimeOfDay(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:MM format"})
		}
		if r.EndTime == nil {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time is required"})
		} else if _, ok := validator.IsValidTimeOfDay(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:MM format"})
		}
	}
	if r.BreakDurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_duration_minutes", Message: "break_duration_minutes must be non-negative"})
	}
	if r.RequiredNetMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "required_net_minutes", Message: "required_net_minutes must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateShiftPackageRequest struct {
	Name                    string  `json:"name"`
	Code                    string  `json:"code"`
	Description             *string `json:"description"`
	MondayWorkingHoursID    string  `json:"monday_working_hours_id"`
	TuesdayWorkingHoursID   string  `json:"tuesday_working_hours_id"`
	WednesdayWorkingHoursID string  `json:"wednesday_working_hours_id"`
	ThursdayWorkingHoursID  string  `json:"thursday_working_hours_id"`
	FridayWorkingHoursID    string  `json:"friday_working_hours_id"`
	SaturdayWorkingHoursID  *string `json:"saturday_working_hours_id"`
	SundayWorkingHoursID    *string `json:"sunday_working_hours_id"`
}

func (r *CreateShiftPackageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}

	weekdays := map[string]string{
		"monday_working_hours_id":    r.MondayWorkingHoursID,
		"tuesday_working_hours_id":   r.TuesdayWorkingHoursID,
		"wednesday_working_hours_id": r.WednesdayWorkingHoursID,
		"thursday_working_hours_id":  r.ThursdayWorkingHoursID,
		"friday_working_hours_id":    r.FridayWorkingHoursID,
	}
	for field, id := range weekdays {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateShiftPatternRequest struct {
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	Description    *string `json:"description"`
	ShiftPackageID string  `json:"shift_package_id"`
	ShiftType      string  `json:"shift_type"`

	FlexibleWindowStart   *string `json:"flexible_window_start"`
	FlexibleWindowEnd     *string `json:"flexible_window_end"`
	FlexibleRequiredHours *string `json:"flexible_required_hours"`

	IsOvertimeAllowed     bool `json:"is_overtime_allowed"`
	IsWfhAllowed          bool `json:"is_wfh_allowed"`
	IsAttendanceMandatory bool `json:"is_attendance_mandatory"`

	LateToleranceMinutes       int `json:"late_tolerance_minutes"`
	EarlyLeaveToleranceMinutes int `json:"early_leave_tolerance_minutes"`

	LateDeductionPerMinute      string `json:"late_deduction_per_minute"`
	LateDeductionMaxAmount      string `json:"late_deduction_max_amount"`
	UnderworkDeductionPerMinute string `json:"underwork_deduction_per_minute"`
	UnderworkDeductionMaxAmount string `json:"underwork_deduction_max_amount"`

	OverrideNationalHoliday bool `json:"override_national_holiday"`
	OverrideCompanyHoliday  bool `json:"override_company_holiday"`
	OverrideJointLeave      bool `json:"override_joint_leave"`
	OverrideWeeklyLeave     bool `json:"override_weekly_leave"`
}

func (r *CreateShiftPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if validator.IsEmpty(r.ShiftPackageID) {
		errs = append(errs, validator.ValidationError{Field: "shift_package_id", Message: "shift_package_id is required"})
	}
	if !validator.IsInSlice(r.ShiftType, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}

	if r.ShiftType == string(ShiftTypeFlexible) {
		if r.FlexibleWindowStart == nil {
			errs = append(errs, validator.ValidationError{Field: "flexible_window_start", Message: "flexible_window_start is required for FLEXIBLE patterns"})
		}
		if r.FlexibleWindowEnd == nil {
			errs = append(errs, validator.ValidationError{Field: "flexible_window_end", Message: "flexible_window_end is required for FLEXIBLE patterns"})
		}
		if r.FlexibleRequiredHours == nil {
			errs = append(errs, validator.ValidationError{Field: "flexible_required_hours", Message: "flexible_required_hours is required for FLEXIBLE patterns"})
		}
	}

	if r.LateToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_tolerance_minutes", Message: "late_tolerance_minutes must be non-negative"})
	}
	if r.EarlyLeaveToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "early_leave_tolerance_minutes", Message: "early_leave_tolerance_minutes must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignShiftPatternRequest struct {
	EmployeeID     string  `json:"employee_id"`
	ShiftPatternID string  `json:"shift_pattern_id"`
	EffectiveFrom  string  `json:"effective_from"`
	Reason         *string `json:"reason"`
	Notes          *string `json:"notes"`
}

func (r *AssignShiftPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.ShiftPatternID) {
		errs = append(errs, validator.ValidationError{Field: "shift_pattern_id", Message: "shift_pattern_id is required"})
	}
	if validator.IsEmpty(r.EffectiveFrom) {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "effective_from is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "effective_from must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateOverrideScheduleRequest struct {
	EmployeeID                    string  `json:"employee_id"`
	ScheduleDate                  string  `json:"schedule_date"`
	WorkingHoursID                *string `json:"working_hours_id"`
	OverrideIsWfh                 *bool   `json:"override_is_wfh"`
	OverrideIsOvertimeAllowed     *bool   `json:"override_is_overtime_allowed"`
	OverrideIsAttendanceMandatory *bool   `json:"override_is_attendance_mandatory"`
	Notes                         *string `json:"notes"`
}

func (r *CreateOverrideScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.ScheduleDate) {
		errs = append(errs, validator.ValidationError{Field: "schedule_date", Message: "schedule_date is required"})
	} else if _, ok := validator.IsValidDate(r.ScheduleDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "schedule_date", Message: "schedule_date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolutionResponse is the wire shape of a Resolution.
type ResolutionResponse struct {
	EmployeeID            string  `json:"employee_id"`
	Date                  string  `json:"date"`
	WorkingHoursID        *string `json:"working_hours_id,omitempty"`
	WorkingHoursName      *string `json:"working_hours_name,omitempty"`
	ShiftPatternID        *string `json:"shift_pattern_id,omitempty"`
	ShiftPatternName      *string `json:"shift_pattern_name,omitempty"`
	StartTime             *string `json:"start_time,omitempty"`
	EndTime               *string `json:"end_time,omitempty"`
	IsWorkingDay          bool    `json:"is_working_day"`
	IsOverride            bool    `json:"is_override"`
	IsWfhAllowed          bool    `json:"is_wfh_allowed"`
	IsOvertimeAllowed     bool    `json:"is_overtime_allowed"`
	IsAttendanceMandatory bool    `json:"is_attendance_mandatory"`
	LateToleranceMinutes  int     `json:"late_tolerance_minutes"`
}

type ShiftSettingResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	ShiftPatternID string  `json:"shift_pattern_id"`
	EffectiveFrom  string  `json:"effective_from"`
	EffectiveTo    *string `json:"effective_to,omitempty"`
	Reason         *string `json:"reason,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type OverrideScheduleResponse struct {
	ID                            string  `json:"id"`
	EmployeeID                    string  `json:"employee_id"`
	ScheduleDate                  string  `json:"schedule_date"`
	WorkingHoursID                *string `json:"working_hours_id,omitempty"`
	OverrideIsWfh                 *bool   `json:"override_is_wfh,omitempty"`
	OverrideIsOvertimeAllowed     *bool   `json:"override_is_overtime_allowed,omitempty"`
	OverrideIsAttendanceMandatory *bool   `json:"override_is_attendance_mandatory,omitempty"`
	Notes                         *string `json:"notes,omitempty"`
}
