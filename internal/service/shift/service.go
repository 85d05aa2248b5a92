package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campushr/hris-engine-go/internal/domain/shift"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
	"github.com/campushr/hris-engine-go/internal/pkg/validator"
)

type service struct {
	workingHoursRepo shift.WorkingHoursRepository
	packageRepo      shift.ShiftPackageRepository
	patternRepo      shift.ShiftPatternRepository
	settingRepo      shift.ShiftSettingRepository
	scheduleRepo     shift.ShiftScheduleRepository
	txManager        database.TxManager
}

func NewService(
	workingHoursRepo shift.WorkingHoursRepository,
	packageRepo shift.ShiftPackageRepository,
	patternRepo shift.ShiftPatternRepository,
	settingRepo shift.ShiftSettingRepository,
	scheduleRepo shift.ShiftScheduleRepository,
	txManager database.TxManager,
) shift.Service {
	return &service{
		workingHoursRepo: workingHoursRepo,
		packageRepo:      packageRepo,
		patternRepo:      patternRepo,
		settingRepo:      settingRepo,
		scheduleRepo:     scheduleRepo,
		txManager:        txManager,
	}
}

// Resolve walks the three layers for one employee-date: the active setting
// selects the pattern, the pattern's package selects the day-of-week working
// hours, and a single-date override replaces whichever fields it carries.
func (s *service) Resolve(ctx context.Context, employeeID string, date time.Time) (shift.Resolution, error) {
	date = truncateToDate(date)

	res := shift.Resolution{
		EmployeeID: employeeID,
		Date:       date,
	}

	setting, err := s.settingRepo.FindActiveByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return shift.Resolution{}, fmt.Errorf("find active shift setting: %w", err)
	}

	if setting != nil {
		pattern, err := s.patternRepo.GetByID(ctx, setting.ShiftPatternID)
		if err != nil {
			return shift.Resolution{}, fmt.Errorf("get shift pattern: %w", err)
		}
		pkg, err := s.packageRepo.GetByID(ctx, pattern.ShiftPackageID)
		if err != nil {
			return shift.Resolution{}, fmt.Errorf("get shift package: %w", err)
		}

		res.ShiftPattern = &pattern
		res.IsWfhAllowed = pattern.IsWfhAllowed
		res.IsOvertimeAllowed = pattern.IsOvertimeAllowed
		res.IsAttendanceMandatory = pattern.IsAttendanceMandatory
		res.LateToleranceMinutes = pattern.LateToleranceMinutes

		if whID := pkg.WorkingHoursIDByDay(date.Weekday()); whID != nil {
			wh, err := s.workingHoursRepo.GetByID(ctx, *whID)
			if err != nil {
				return shift.Resolution{}, fmt.Errorf("get working hours: %w", err)
			}
			if !wh.IsOff() {
				res.WorkingHours = &wh
				res.IsWorkingDay = true
			}
		}
	}

	override, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return shift.Resolution{}, fmt.Errorf("get override schedule: %w", err)
	}
	if override == nil {
		return res, nil
	}

	res.IsOverride = true
	res.OverrideNotes = override.Notes

	// The override replaces the working hours outright: a missing reference,
	// like the off sentinel, turns the day off.
	res.WorkingHours = nil
	res.IsWorkingDay = false
	if override.WorkingHoursID != nil {
		wh, err := s.workingHoursRepo.GetByID(ctx, *override.WorkingHoursID)
		if err != nil {
			return shift.Resolution{}, fmt.Errorf("get override working hours: %w", err)
		}
		if !wh.IsOff() {
			res.WorkingHours = &wh
			res.IsWorkingDay = true
		}
	}
	if override.OverrideIsWfh != nil {
		res.IsWfhAllowed = *override.OverrideIsWfh
	}
	if override.OverrideIsOvertimeAllowed != nil {
		res.IsOvertimeAllowed = *override.OverrideIsOvertimeAllowed
	}
	if override.OverrideIsAttendanceMandatory != nil {
		res.IsAttendanceMandatory = *override.OverrideIsAttendanceMandatory
	}

	return res, nil
}

func (s *service) ResolveRange(ctx context.Context, employeeID string, from, to time.Time) ([]shift.Resolution, error) {
	from = truncateToDate(from)
	to = truncateToDate(to)
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: end before start")
	}

	var resolutions []shift.Resolution
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		res, err := s.Resolve(ctx, employeeID, d)
		if err != nil {
			return nil, err
		}
		resolutions = append(resolutions, res)
	}
	return resolutions, nil
}

// AssignShiftPattern closes any open setting at effectiveFrom minus one day,
// then inserts the new open-ended setting. Both writes run in one
// transaction so the employee never has two open settings.
func (s *service) AssignShiftPattern(ctx context.Context, req shift.AssignShiftPatternRequest, createdBy string) (shift.EmployeeShiftSetting, error) {
	if err := req.Validate(); err != nil {
		return shift.EmployeeShiftSetting{}, err
	}

	effectiveFrom, _ := validator.IsValidDate(req.EffectiveFrom)

	if _, err := s.patternRepo.GetByID(ctx, req.ShiftPatternID); err != nil {
		return shift.EmployeeShiftSetting{}, fmt.Errorf("get shift pattern: %w", err)
	}

	var created shift.EmployeeShiftSetting
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		open, err := s.settingRepo.FindOpenByEmployee(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("find open shift setting: %w", err)
		}
		if open != nil {
			closeAt := effectiveFrom.AddDate(0, 0, -1)
			if err := s.settingRepo.CloseSetting(ctx, open.ID, closeAt); err != nil {
				return fmt.Errorf("close prior shift setting: %w", err)
			}
		}

		setting := shift.EmployeeShiftSetting{
			ID:             uuid.NewString(),
			EmployeeID:     req.EmployeeID,
			ShiftPatternID: req.ShiftPatternID,
			EffectiveFrom:  effectiveFrom,
			Reason:         req.Reason,
			Notes:          req.Notes,
			CreatedBy:      &createdBy,
		}
		created, err = s.settingRepo.Create(ctx, setting)
		if err != nil {
			return fmt.Errorf("create shift setting: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.EmployeeShiftSetting{}, err
	}
	return created, nil
}

func (s *service) ListShiftSettings(ctx context.Context, employeeID string) ([]shift.EmployeeShiftSetting, error) {
	settings, err := s.settingRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list shift settings: %w", err)
	}
	return settings, nil
}

// CreateOverrideSchedule upserts the override for (employee, date): a second
// submission for the same date updates the existing row in place.
func (s *service) CreateOverrideSchedule(ctx context.Context, req shift.CreateOverrideScheduleRequest, createdBy string) (shift.EmployeeShiftSchedule, error) {
	if err := req.Validate(); err != nil {
		return shift.EmployeeShiftSchedule{}, err
	}

	scheduleDate, _ := validator.IsValidDate(req.ScheduleDate)

	if req.WorkingHoursID != nil {
		if _, err := s.workingHoursRepo.GetByID(ctx, *req.WorkingHoursID); err != nil {
			return shift.EmployeeShiftSchedule{}, fmt.Errorf("get working hours: %w", err)
		}
	}

	existing, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, scheduleDate)
	if err != nil {
		return shift.EmployeeShiftSchedule{}, fmt.Errorf("get override schedule: %w", err)
	}

	if existing != nil {
		existing.WorkingHoursID = req.WorkingHoursID
		existing.OverrideIsWfh = req.OverrideIsWfh
		existing.OverrideIsOvertimeAllowed = req.OverrideIsOvertimeAllowed
		existing.OverrideIsAttendanceMandatory = req.OverrideIsAttendanceMandatory
		existing.Notes = req.Notes

		updated, err := s.scheduleRepo.Update(ctx, *existing)
		if err != nil {
			return shift.EmployeeShiftSchedule{}, fmt.Errorf("update override schedule: %w", err)
		}
		return updated, nil
	}

	schedule := shift.EmployeeShiftSchedule{
		ID:                            uuid.NewString(),
		EmployeeID:                    req.EmployeeID,
		ScheduleDate:                  scheduleDate,
		WorkingHoursID:                req.WorkingHoursID,
		OverrideIsWfh:                 req.OverrideIsWfh,
		OverrideIsOvertimeAllowed:     req.OverrideIsOvertimeAllowed,
		OverrideIsAttendanceMandatory: req.OverrideIsAttendanceMandatory,
		Notes:                         req.Notes,
		CreatedBy:                     &createdBy,
	}
	created, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		return shift.EmployeeShiftSchedule{}, fmt.Errorf("create override schedule: %w", err)
	}
	return created, nil
}

func (s *service) DeleteOverrideSchedule(ctx context.Context, id string) error {
	if _, err := s.scheduleRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get override schedule: %w", err)
	}
	if err := s.scheduleRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete override schedule: %w", err)
	}
	return nil
}

func (s *service) CreateWorkingHours(ctx context.Context, req shift.CreateWorkingHoursRequest) (shift.WorkingHours, error) {
	if err := req.Validate(); err != nil {
		return shift.WorkingHours{}, err
	}

	wh := shift.WorkingHours{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		Code:                 req.Code,
		Description:          req.Description,
		IsOvernight:          req.IsOvernight,
		BreakDurationMinutes: req.BreakDurationMinutes,
		RequiredNetMinutes:   req.RequiredNetMinutes,
	}
	if req.StartTime != nil {
		t, _ := validator.IsValidTimeOfDay(*req.StartTime)
		wh.StartTime = &t
	}
	if req.EndTime != nil {
		t, _ := validator.IsValidTimeOfDay(*req.EndTime)
		wh.EndTime = &t
	}

	created, err := s.workingHoursRepo.Create(ctx, wh)
	if err != nil {
		return shift.WorkingHours{}, fmt.Errorf("create working hours: %w", err)
	}
	return created, nil
}

func (s *service) ListWorkingHours(ctx context.Context) ([]shift.WorkingHours, error) {
	list, err := s.workingHoursRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	return list, nil
}

func (s *service) CreateShiftPackage(ctx context.Context, req shift.CreateShiftPackageRequest) (shift.ShiftPackage, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftPackage{}, err
	}

	pkg := shift.ShiftPackage{
		ID:                      uuid.NewString(),
		Name:                    req.Name,
		Code:                    req.Code,
		Description:             req.Description,
		MondayWorkingHoursID:    req.MondayWorkingHoursID,
		TuesdayWorkingHoursID:   req.TuesdayWorkingHoursID,
		WednesdayWorkingHoursID: req.WednesdayWorkingHoursID,
		ThursdayWorkingHoursID:  req.ThursdayWorkingHoursID,
		FridayWorkingHoursID:    req.FridayWorkingHoursID,
		SaturdayWorkingHoursID:  req.SaturdayWorkingHoursID,
		SundayWorkingHoursID:    req.SundayWorkingHoursID,
	}

	for _, id := range pkg.WorkingHoursIDs() {
		if _, err := s.workingHoursRepo.GetByID(ctx, id); err != nil {
			return shift.ShiftPackage{}, fmt.Errorf("get working hours %s: %w", id, err)
		}
	}

	created, err := s.packageRepo.Create(ctx, pkg)
	if err != nil {
		return shift.ShiftPackage{}, fmt.Errorf("create shift package: %w", err)
	}
	return created, nil
}

func (s *service) ListShiftPackages(ctx context.Context) ([]shift.ShiftPackage, error) {
	list, err := s.packageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shift packages: %w", err)
	}
	return list, nil
}

func (s *service) CreateShiftPattern(ctx context.Context, req shift.CreateShiftPatternRequest) (shift.ShiftPattern, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftPattern{}, err
	}

	if _, err := s.packageRepo.GetByID(ctx, req.ShiftPackageID); err != nil {
		return shift.ShiftPattern{}, fmt.Errorf("get shift package: %w", err)
	}

	pattern := shift.ShiftPattern{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Code:           req.Code,
		Description:    req.Description,
		ShiftPackageID: req.ShiftPackageID,
		ShiftType:      shift.ShiftType(req.ShiftType),

		IsOvertimeAllowed:     req.IsOvertimeAllowed,
		IsWfhAllowed:          req.IsWfhAllowed,
		IsAttendanceMandatory: req.IsAttendanceMandatory,

		LateToleranceMinutes:       req.LateToleranceMinutes,
		EarlyLeaveToleranceMinutes: req.EarlyLeaveToleranceMinutes,

		OverrideNationalHoliday: req.OverrideNationalHoliday,
		OverrideCompanyHoliday:  req.OverrideCompanyHoliday,
		OverrideJointLeave:      req.OverrideJointLeave,
		OverrideWeeklyLeave:     req.OverrideWeeklyLeave,
	}

	var err error
	if pattern.LateDeductionPerMinute, err = parseAmount(req.LateDeductionPerMinute); err != nil {
		return shift.ShiftPattern{}, fmt.Errorf("parse late_deduction_per_minute: %w", err)
	}
	if pattern.LateDeductionMaxAmount, err = parseAmount(req.LateDeductionMaxAmount); err != nil {
		return shift.ShiftPattern{}, fmt.Errorf("parse late_deduction_max_amount: %w", err)
	}
	if pattern.UnderworkDeductionPerMinute, err = parseAmount(req.UnderworkDeductionPerMinute); err != nil {
		return shift.ShiftPattern{}, fmt.Errorf("parse underwork_deduction_per_minute: %w", err)
	}
	if pattern.UnderworkDeductionMaxAmount, err = parseAmount(req.UnderworkDeductionMaxAmount); err != nil {
		return shift.ShiftPattern{}, fmt.Errorf("parse underwork_deduction_max_amount: %w", err)
	}

	if pattern.IsFlexible() {
		if req.FlexibleWindowStart != nil {
			t, _ := validator.IsValidTimeOfDay(*req.FlexibleWindowStart)
			pattern.FlexibleWindowStart = &t
		}
		if req.FlexibleWindowEnd != nil {
			t, _ := validator.IsValidTimeOfDay(*req.FlexibleWindowEnd)
			pattern.FlexibleWindowEnd = &t
		}
		if req.FlexibleRequiredHours != nil {
			hours, err := decimal.NewFromString(*req.FlexibleRequiredHours)
			if err != nil {
				return shift.ShiftPattern{}, fmt.Errorf("parse flexible_required_hours: %w", err)
			}
			pattern.FlexibleRequiredHours = &hours
		}
	}

	created, err := s.patternRepo.Create(ctx, pattern)
	if err != nil {
		return shift.ShiftPattern{}, fmt.Errorf("create shift pattern: %w", err)
	}
	return created, nil
}

func (s *service) ListShiftPatterns(ctx context.Context) ([]shift.ShiftPattern, error) {
	list, err := s.patternRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shift patterns: %w", err)
	}
	return list, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
