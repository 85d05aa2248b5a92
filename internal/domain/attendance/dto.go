package attendance

import (
	"github.com/campushr/hris-engine-go/internal/pkg/validator"
)

type ClockInRequest struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DeviceInfo *string `json:"device_info"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DeviceInfo *string `json:"device_info"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	ClockInTime  *string `json:"clock_in_time,omitempty"`
	ClockOutTime *string `json:"clock_out_time,omitempty"`

	IsWfh bool `json:"is_wfh"`

	IsLate        bool   `json:"is_late"`
	LateMinutes   int    `json:"late_minutes"`
	LateDeduction string `json:"late_deduction"`

	IsEarlyLeave      bool `json:"is_early_leave"`
	EarlyLeaveMinutes int  `json:"early_leave_minutes"`

	IsOvertime      bool `json:"is_overtime"`
	OvertimeMinutes int  `json:"overtime_minutes"`

	ActualWorkMinutes   int `json:"actual_work_minutes"`
	RequiredWorkMinutes int `json:"required_work_minutes"`

	UnderworkMinutes   int    `json:"underwork_minutes"`
	UnderworkDeduction string `json:"underwork_deduction"`

	Status string `json:"status"`
}
