package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campushr/hris-engine-go/internal/domain/attendance"
	"github.com/campushr/hris-engine-go/internal/domain/shift"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
	"github.com/campushr/hris-engine-go/internal/pkg/geo"
)

// earlyClockInWindow is how long before schedule start a clock-in is
// accepted.
const earlyClockInWindow = time.Hour

type service struct {
	attendanceRepo attendance.Repository
	shiftService   shift.Service
	holidays       attendance.HolidayLookup
	office         attendance.OfficeLocationProvider
	wfhLookup      attendance.WfhApprovalLookup
	txManager      database.TxManager
}

func NewService(
	attendanceRepo attendance.Repository,
	shiftService shift.Service,
	holidays attendance.HolidayLookup,
	office attendance.OfficeLocationProvider,
	wfhLookup attendance.WfhApprovalLookup,
	txManager database.TxManager,
) attendance.Service {
	return &service{
		attendanceRepo: attendanceRepo,
		shiftService:   shiftService,
		holidays:       holidays,
		office:         office,
		wfhLookup:      wfhLookup,
		txManager:      txManager,
	}
}

// ClockIn validates the schedule, holiday, WFH and geofence rules, then
// writes the record. The existence check and the insert run in one
// transaction; the unique (employee_id, date) index backstops concurrent
// clock-ins.
func (s *service) ClockIn(ctx context.Context, employeeID string, req attendance.ClockInRequest, now time.Time) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	date := truncateToDate(now)

	var created attendance.Record
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return fmt.Errorf("get attendance record: %w", err)
		}
		if existing != nil {
			return attendance.ErrAlreadyClockedIn
		}

		res, err := s.shiftService.Resolve(ctx, employeeID, date)
		if err != nil {
			return fmt.Errorf("resolve schedule: %w", err)
		}
		if !res.IsWorkingDay {
			return attendance.ErrNonWorkingDay
		}

		if err := s.checkHoliday(ctx, res, date); err != nil {
			return err
		}

		flexible := res.ShiftPattern != nil && res.ShiftPattern.IsFlexible()

		var lateMinutes int
		if !flexible {
			start := res.StartTime()
			end := res.EndTime()
			if start == nil || end == nil {
				return attendance.ErrNonWorkingDay
			}
			if now.Before(start.Add(-earlyClockInWindow)) {
				return attendance.ErrTooEarlyToClockIn
			}
			if now.After(*end) {
				return attendance.ErrTooLateToClockIn
			}

			effectiveStart := start.Add(time.Duration(res.LateToleranceMinutes) * time.Minute)
			if now.After(effectiveStart) {
				// Sub-minute lateness truncates to zero and stays PRESENT.
				lateMinutes = int(now.Sub(effectiveStart).Minutes())
			}
		}

		// WFH is derived from the schedule, never from the client. A pattern
		// that allows WFH requires an approved WFH request for the date; only
		// that approval skips the geofence.
		isWfh := false
		if res.IsWfhAllowed {
			approved, err := s.wfhLookup.HasApprovedWfh(ctx, employeeID, date)
			if err != nil {
				return fmt.Errorf("check wfh approval: %w", err)
			}
			if !approved {
				return attendance.ErrWfhNotApproved
			}
			isWfh = true
		}

		if !isWfh {
			officeLat, officeLon, radius, err := s.office.OfficeLocation(ctx)
			if err != nil {
				return fmt.Errorf("get office location: %w", err)
			}
			distance := geo.HaversineDistance(req.Latitude, req.Longitude, officeLat, officeLon)
			if distance > radius {
				return attendance.ErrLocationOutOfRange
			}
		}

		record := attendance.Record{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Date:       date,

			ClockInTime:      &now,
			ClockInLatitude:  &req.Latitude,
			ClockInLongitude: &req.Longitude,
			ClockInDevice:    req.DeviceInfo,

			IsWfh: isWfh,

			RequiredWorkMinutes: requiredMinutes(res),
			Status:              attendance.StatusPresent,
		}
		if res.WorkingHours != nil {
			record.WorkingHoursID = &res.WorkingHours.ID
		}
		if res.ShiftPattern != nil {
			record.ShiftPatternID = &res.ShiftPattern.ID
		}
		if lateMinutes > 0 {
			record.IsLate = true
			record.LateMinutes = lateMinutes
			record.Status = attendance.StatusLate
			if res.ShiftPattern != nil {
				record.LateDeduction = res.ShiftPattern.CalculateLateDeduction(lateMinutes)
			}
		}

		created, err = s.attendanceRepo.Create(ctx, record)
		if err != nil {
			return fmt.Errorf("create attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return created, nil
}

// ClockOut closes the open record. The record is looked up by open state
// rather than by today's date so overnight shifts close correctly after
// midnight. Clock-out location is recorded but not validated against the
// geofence.
func (s *service) ClockOut(ctx context.Context, employeeID string, req attendance.ClockOutRequest, now time.Time) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	record, err := s.attendanceRepo.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("get open attendance record: %w", err)
	}
	if record == nil {
		todays, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, truncateToDate(now))
		if err != nil {
			return attendance.Record{}, fmt.Errorf("get attendance record: %w", err)
		}
		if todays != nil && todays.IsClockedOut() {
			return attendance.Record{}, attendance.ErrAlreadyClockedOut
		}
		return attendance.Record{}, attendance.ErrNoClockInRecord
	}

	res, err := s.shiftService.Resolve(ctx, employeeID, record.Date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("resolve schedule: %w", err)
	}

	record.ClockOutTime = &now
	record.ClockOutLatitude = &req.Latitude
	record.ClockOutLongitude = &req.Longitude
	record.ClockOutDevice = req.DeviceInfo

	if record.ClockInTime != nil {
		actual := int(now.Sub(*record.ClockInTime).Minutes())
		if actual < 0 {
			actual = 0
		}
		record.ActualWorkMinutes = actual
	}

	flexible := res.ShiftPattern != nil && res.ShiftPattern.IsFlexible()
	if end := res.EndTime(); end != nil && !flexible {
		tolerance := 0
		if res.ShiftPattern != nil {
			tolerance = res.ShiftPattern.EarlyLeaveToleranceMinutes
		}
		earlyBoundary := end.Add(-time.Duration(tolerance) * time.Minute)
		if now.Before(earlyBoundary) {
			record.IsEarlyLeave = true
			record.EarlyLeaveMinutes = int(end.Sub(now).Minutes())
		}
		if res.IsOvertimeAllowed && now.After(*end) {
			overtime := int(now.Sub(*end).Minutes())
			if overtime > 0 {
				record.IsOvertime = true
				record.OvertimeMinutes = overtime
			}
		}
	}

	if underwork := record.RequiredWorkMinutes - record.ActualWorkMinutes; underwork > 0 {
		record.UnderworkMinutes = underwork
		if res.ShiftPattern != nil {
			record.UnderworkDeduction = res.ShiftPattern.CalculateUnderworkDeduction(underwork)
		}
	}

	updated, err := s.attendanceRepo.Update(ctx, *record)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("update attendance record: %w", err)
	}
	return updated, nil
}

func (s *service) GetToday(ctx context.Context, employeeID string, now time.Time) (*attendance.Record, error) {
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, truncateToDate(now))
	if err != nil {
		return nil, fmt.Errorf("get attendance record: %w", err)
	}
	return record, nil
}

func (s *service) ListByRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, truncateToDate(from), truncateToDate(to))
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}

// checkHoliday blocks the clock-in when any holiday category applies and the
// employee's pattern does not override that category.
func (s *service) checkHoliday(ctx context.Context, res shift.Resolution, date time.Time) error {
	isNational, isCompany, isJointLeave, err := s.holidays.HolidayFlags(ctx, date)
	if err != nil {
		return fmt.Errorf("look up holidays: %w", err)
	}
	if !isNational && !isCompany && !isJointLeave {
		return nil
	}

	var pattern shift.ShiftPattern
	if res.ShiftPattern != nil {
		pattern = *res.ShiftPattern
	}

	if isNational && !pattern.OverrideNationalHoliday {
		return attendance.ErrHolidayBlocked
	}
	if isCompany && !pattern.OverrideCompanyHoliday {
		return attendance.ErrHolidayBlocked
	}
	if isJointLeave && !pattern.OverrideJointLeave {
		return attendance.ErrHolidayBlocked
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func requiredMinutes(res shift.Resolution) int {
	if res.ShiftPattern != nil && res.ShiftPattern.IsFlexible() && res.ShiftPattern.FlexibleRequiredHours != nil {
		return int(res.ShiftPattern.FlexibleRequiredHours.Mul(decimal.NewFromInt(60)).IntPart())
	}
	return res.RequiredWorkMinutes()
}
