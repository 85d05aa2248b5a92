package shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushr/hris-engine-go/internal/domain/shift"
)

type fakeWorkingHoursRepo struct {
	byID map[string]shift.WorkingHours
}

func (f *fakeWorkingHoursRepo) Create(_ context.Context, wh shift.WorkingHours) (shift.WorkingHours, error) {
	f.byID[wh.ID] = wh
	return wh, nil
}

func (f *fakeWorkingHoursRepo) GetByID(_ context.Context, id string) (shift.WorkingHours, error) {
	wh, ok := f.byID[id]
	if !ok {
		return shift.WorkingHours{}, shift.ErrWorkingHoursNotFound
	}
	return wh, nil
}

func (f *fakeWorkingHoursRepo) List(_ context.Context) ([]shift.WorkingHours, error) {
	var list []shift.WorkingHours
	for _, wh := range f.byID {
		list = append(list, wh)
	}
	return list, nil
}

func (f *fakeWorkingHoursRepo) IsReferencedByPackage(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type fakePackageRepo struct {
	byID map[string]shift.ShiftPackage
}

func (f *fakePackageRepo) Create(_ context.Context, pkg shift.ShiftPackage) (shift.ShiftPackage, error) {
	f.byID[pkg.ID] = pkg
	return pkg, nil
}

func (f *fakePackageRepo) GetByID(_ context.Context, id string) (shift.ShiftPackage, error) {
	pkg, ok := f.byID[id]
	if !ok {
		return shift.ShiftPackage{}, shift.ErrShiftPackageNotFound
	}
	return pkg, nil
}

func (f *fakePackageRepo) List(_ context.Context) ([]shift.ShiftPackage, error) {
	return nil, nil
}

type fakePatternRepo struct {
	byID map[string]shift.ShiftPattern
}

func (f *fakePatternRepo) Create(_ context.Context, pattern shift.ShiftPattern) (shift.ShiftPattern, error) {
	f.byID[pattern.ID] = pattern
	return pattern, nil
}

func (f *fakePatternRepo) GetByID(_ context.Context, id string) (shift.ShiftPattern, error) {
	pattern, ok := f.byID[id]
	if !ok {
		return shift.ShiftPattern{}, shift.ErrShiftPatternNotFound
	}
	return pattern, nil
}

func (f *fakePatternRepo) List(_ context.Context) ([]shift.ShiftPattern, error) {
	return nil, nil
}

type fakeSettingRepo struct {
	settings []shift.EmployeeShiftSetting
}

func (f *fakeSettingRepo) Create(_ context.Context, setting shift.EmployeeShiftSetting) (shift.EmployeeShiftSetting, error) {
	f.settings = append(f.settings, setting)
	return setting, nil
}

func (f *fakeSettingRepo) FindActiveByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*shift.EmployeeShiftSetting, error) {
	for i := range f.settings {
		s := f.settings[i]
		if s.EmployeeID == employeeID && s.CoversDate(date) {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSettingRepo) FindOpenByEmployee(_ context.Context, employeeID string) (*shift.EmployeeShiftSetting, error) {
	for i := range f.settings {
		s := f.settings[i]
		if s.EmployeeID == employeeID && s.EffectiveTo == nil {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSettingRepo) CloseSetting(_ context.Context, id string, effectiveTo time.Time) error {
	for i := range f.settings {
		if f.settings[i].ID == id {
			f.settings[i].EffectiveTo = &effectiveTo
			return nil
		}
	}
	return shift.ErrShiftSettingNotFound
}

func (f *fakeSettingRepo) ListByEmployee(_ context.Context, employeeID string) ([]shift.EmployeeShiftSetting, error) {
	var list []shift.EmployeeShiftSetting
	for _, s := range f.settings {
		if s.EmployeeID == employeeID {
			list = append(list, s)
		}
	}
	return list, nil
}

type fakeScheduleRepo struct {
	schedules []shift.EmployeeShiftSchedule
}

func (f *fakeScheduleRepo) Create(_ context.Context, schedule shift.EmployeeShiftSchedule) (shift.EmployeeShiftSchedule, error) {
	f.schedules = append(f.schedules, schedule)
	return schedule, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, schedule shift.EmployeeShiftSchedule) (shift.EmployeeShiftSchedule, error) {
	for i := range f.schedules {
		if f.schedules[i].ID == schedule.ID {
			f.schedules[i] = schedule
			return schedule, nil
		}
	}
	return shift.EmployeeShiftSchedule{}, shift.ErrOverrideNotFound
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id string) (shift.EmployeeShiftSchedule, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return shift.EmployeeShiftSchedule{}, shift.ErrOverrideNotFound
}

func (f *fakeScheduleRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*shift.EmployeeShiftSchedule, error) {
	for i := range f.schedules {
		s := f.schedules[i]
		if s.EmployeeID == employeeID && s.ScheduleDate.Equal(date) && s.DeletedAt == nil {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) ListByEmployeeAndRange(_ context.Context, _ string, _, _ time.Time) ([]shift.EmployeeShiftSchedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) SoftDelete(_ context.Context, id string) error {
	now := time.Now()
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules[i].DeletedAt = &now
			return nil
		}
	}
	return shift.ErrOverrideNotFound
}

type passthroughTxManager struct{}

func (passthroughTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	whRepo       *fakeWorkingHoursRepo
	packageRepo  *fakePackageRepo
	patternRepo  *fakePatternRepo
	settingRepo  *fakeSettingRepo
	scheduleRepo *fakeScheduleRepo
	service      shift.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		whRepo:       &fakeWorkingHoursRepo{byID: map[string]shift.WorkingHours{}},
		packageRepo:  &fakePackageRepo{byID: map[string]shift.ShiftPackage{}},
		patternRepo:  &fakePatternRepo{byID: map[string]shift.ShiftPattern{}},
		settingRepo:  &fakeSettingRepo{},
		scheduleRepo: &fakeScheduleRepo{},
	}
	f.service = NewService(f.whRepo, f.packageRepo, f.patternRepo, f.settingRepo, f.scheduleRepo, passthroughTxManager{})
	return f
}

func mustClock(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", value)
	require.NoError(t, err)
	return &parsed
}

// seedWeekdayPattern installs a Mon-Fri 09:00-17:00 pattern assigned to
// emp-1 from 2026-01-01, weekends off.
func (f *fixture) seedWeekdayPattern(t *testing.T) {
	t.Helper()

	f.whRepo.byID["wh-day"] = shift.WorkingHours{
		ID:        "wh-day",
		Name:      "Day Shift",
		Code:      "WH_DAY",
		StartTime: mustClock(t, "09:00"),
		EndTime:   mustClock(t, "17:00"),
	}
	f.whRepo.byID["wh-off"] = shift.WorkingHours{
		ID:   "wh-off",
		Name: "Off",
		Code: shift.OffCode,
	}
	f.packageRepo.byID["pkg-1"] = shift.ShiftPackage{
		ID:                      "pkg-1",
		MondayWorkingHoursID:    "wh-day",
		TuesdayWorkingHoursID:   "wh-day",
		WednesdayWorkingHoursID: "wh-day",
		ThursdayWorkingHoursID:  "wh-day",
		FridayWorkingHoursID:    "wh-day",
	}
	f.patternRepo.byID["pat-1"] = shift.ShiftPattern{
		ID:                    "pat-1",
		ShiftPackageID:        "pkg-1",
		ShiftType:             shift.ShiftTypeFixed,
		IsWfhAllowed:          false,
		IsOvertimeAllowed:     true,
		IsAttendanceMandatory: true,
		LateToleranceMinutes:  15,
	}
	f.settingRepo.settings = append(f.settingRepo.settings, shift.EmployeeShiftSetting{
		ID:             "set-1",
		EmployeeID:     "emp-1",
		ShiftPatternID: "pat-1",
		EffectiveFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestResolveWeekday(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)

	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	res, err := f.service.Resolve(context.Background(), "emp-1", monday)
	require.NoError(t, err)

	assert.True(t, res.IsWorkingDay)
	assert.False(t, res.IsOverride)
	require.NotNil(t, res.WorkingHours)
	assert.Equal(t, "wh-day", res.WorkingHours.ID)
	assert.Equal(t, 15, res.LateToleranceMinutes)
	assert.True(t, res.IsOvertimeAllowed)
	assert.False(t, res.IsWfhAllowed)
}

func TestResolveWeekendIsOff(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	res, err := f.service.Resolve(context.Background(), "emp-1", sunday)
	require.NoError(t, err)

	assert.False(t, res.IsWorkingDay)
	assert.Nil(t, res.WorkingHours)
	require.NotNil(t, res.ShiftPattern)
}

func TestResolveWithoutAssignment(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Resolve(context.Background(), "emp-9", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.False(t, res.IsWorkingDay)
	assert.Nil(t, res.WorkingHours)
	assert.Nil(t, res.ShiftPattern)
}

func TestResolveOverrideReplacesWorkingHours(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)
	f.whRepo.byID["wh-late"] = shift.WorkingHours{
		ID:        "wh-late",
		Code:      "WH_LATE",
		StartTime: mustClock(t, "13:00"),
		EndTime:   mustClock(t, "21:00"),
	}

	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	whID := "wh-late"
	wfh := true
	f.scheduleRepo.schedules = append(f.scheduleRepo.schedules, shift.EmployeeShiftSchedule{
		ID:             "ovr-1",
		EmployeeID:     "emp-1",
		ScheduleDate:   monday,
		WorkingHoursID: &whID,
		OverrideIsWfh:  &wfh,
	})

	res, err := f.service.Resolve(context.Background(), "emp-1", monday)
	require.NoError(t, err)

	assert.True(t, res.IsOverride)
	assert.True(t, res.IsWorkingDay)
	require.NotNil(t, res.WorkingHours)
	assert.Equal(t, "wh-late", res.WorkingHours.ID)
	assert.True(t, res.IsWfhAllowed)
	// Fields the override does not carry keep the pattern's values.
	assert.True(t, res.IsOvertimeAllowed)
}

func TestResolveOverrideToOffDay(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)

	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	offID := "wh-off"
	f.scheduleRepo.schedules = append(f.scheduleRepo.schedules, shift.EmployeeShiftSchedule{
		ID:             "ovr-2",
		EmployeeID:     "emp-1",
		ScheduleDate:   monday,
		WorkingHoursID: &offID,
	})

	res, err := f.service.Resolve(context.Background(), "emp-1", monday)
	require.NoError(t, err)

	assert.True(t, res.IsOverride)
	assert.False(t, res.IsWorkingDay)
	assert.Nil(t, res.WorkingHours)
}

func TestResolveOverrideWithoutWorkingHoursIsOffDay(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)

	// An override that references no working hours turns the day off even
	// though the pattern schedules it.
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	wfh := true
	f.scheduleRepo.schedules = append(f.scheduleRepo.schedules, shift.EmployeeShiftSchedule{
		ID:            "ovr-4",
		EmployeeID:    "emp-1",
		ScheduleDate:  monday,
		OverrideIsWfh: &wfh,
	})

	res, err := f.service.Resolve(context.Background(), "emp-1", monday)
	require.NoError(t, err)

	assert.True(t, res.IsOverride)
	assert.False(t, res.IsWorkingDay)
	assert.Nil(t, res.WorkingHours)
}

func TestResolveOverrideOnWeekendMakesWorkingDay(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	whID := "wh-day"
	f.scheduleRepo.schedules = append(f.scheduleRepo.schedules, shift.EmployeeShiftSchedule{
		ID:             "ovr-3",
		EmployeeID:     "emp-1",
		ScheduleDate:   sunday,
		WorkingHoursID: &whID,
	})

	res, err := f.service.Resolve(context.Background(), "emp-1", sunday)
	require.NoError(t, err)

	assert.True(t, res.IsWorkingDay)
	require.NotNil(t, res.WorkingHours)
	assert.Equal(t, "wh-day", res.WorkingHours.ID)
}

func TestResolveRange(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)

	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // Monday
	to := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)  // Sunday
	resolutions, err := f.service.ResolveRange(context.Background(), "emp-1", from, to)
	require.NoError(t, err)
	require.Len(t, resolutions, 7)

	workingDays := 0
	for _, res := range resolutions {
		if res.IsWorkingDay {
			workingDays++
		}
	}
	assert.Equal(t, 5, workingDays)
}

func TestResolveRangeRejectsInvertedRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ResolveRange(context.Background(), "emp-1",
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestAssignShiftPatternClosesPriorOpenSetting(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)

	req := shift.AssignShiftPatternRequest{
		EmployeeID:     "emp-1",
		ShiftPatternID: "pat-1",
		EffectiveFrom:  "2026-06-01",
	}
	created, err := f.service.AssignShiftPattern(context.Background(), req, "hr-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", created.EmployeeID)
	assert.Nil(t, created.EffectiveTo)

	// Prior open setting is closed at effectiveFrom minus one day.
	var prior *shift.EmployeeShiftSetting
	for i := range f.settingRepo.settings {
		if f.settingRepo.settings[i].ID == "set-1" {
			prior = &f.settingRepo.settings[i]
		}
	}
	require.NotNil(t, prior)
	require.NotNil(t, prior.EffectiveTo)
	assert.Equal(t, time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), *prior.EffectiveTo)
}

func TestAssignShiftPatternUnknownPattern(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.AssignShiftPattern(context.Background(), shift.AssignShiftPatternRequest{
		EmployeeID:     "emp-1",
		ShiftPatternID: "missing",
		EffectiveFrom:  "2026-06-01",
	}, "hr-1")
	assert.ErrorIs(t, err, shift.ErrShiftPatternNotFound)
}

func TestCreateOverrideScheduleUpserts(t *testing.T) {
	f := newFixture(t)
	f.seedWeekdayPattern(t)

	whID := "wh-day"
	req := shift.CreateOverrideScheduleRequest{
		EmployeeID:     "emp-1",
		ScheduleDate:   "2026-03-09",
		WorkingHoursID: &whID,
	}
	first, err := f.service.CreateOverrideSchedule(context.Background(), req, "hr-1")
	require.NoError(t, err)

	// A second submission for the same date updates in place.
	offID := "wh-off"
	req.WorkingHoursID = &offID
	second, err := f.service.CreateOverrideSchedule(context.Background(), req, "hr-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, f.scheduleRepo.schedules, 1)
	require.NotNil(t, f.scheduleRepo.schedules[0].WorkingHoursID)
	assert.Equal(t, "wh-off", *f.scheduleRepo.schedules[0].WorkingHoursID)
}

func TestDeleteOverrideSchedule(t *testing.T) {
	f := newFixture(t)
	f.scheduleRepo.schedules = append(f.scheduleRepo.schedules, shift.EmployeeShiftSchedule{
		ID:           "ovr-1",
		EmployeeID:   "emp-1",
		ScheduleDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, f.service.DeleteOverrideSchedule(context.Background(), "ovr-1"))
	assert.NotNil(t, f.scheduleRepo.schedules[0].DeletedAt)

	assert.ErrorIs(t, f.service.DeleteOverrideSchedule(context.Background(), "missing"), shift.ErrOverrideNotFound)
}
