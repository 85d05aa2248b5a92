package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushr/hris-engine-go/internal/domain/attendance"
	"github.com/campushr/hris-engine-go/internal/domain/shift"
)

const (
	officeLat    = -6.2000
	officeLon    = 106.8000
	officeRadius = 100.0
)

type fakeAttendanceRepo struct {
	records   []attendance.Record
	createErr error
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	if f.createErr != nil {
		return attendance.Record{}, f.createErr
	}
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Record) (attendance.Record, error) {
	for i := range f.records {
		if f.records[i].ID == record.ID {
			f.records[i] = record
			return record, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	for i := range f.records {
		r := f.records[i]
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetOpenByEmployee(_ context.Context, employeeID string) (*attendance.Record, error) {
	for i := len(f.records) - 1; i >= 0; i-- {
		r := f.records[i]
		if r.EmployeeID == employeeID && r.ClockInTime != nil && r.ClockOutTime == nil {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	var list []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			list = append(list, r)
		}
	}
	return list, nil
}

// fakeShiftService returns a canned resolution; only Resolve is exercised by
// the clock engine.
type fakeShiftService struct {
	shift.Service
	res shift.Resolution
}

func (f *fakeShiftService) Resolve(_ context.Context, employeeID string, date time.Time) (shift.Resolution, error) {
	res := f.res
	res.EmployeeID = employeeID
	res.Date = date
	return res, nil
}

type fakeHolidayLookup struct {
	national, company, jointLeave bool
}

func (f *fakeHolidayLookup) HolidayFlags(_ context.Context, _ time.Time) (bool, bool, bool, error) {
	return f.national, f.company, f.jointLeave, nil
}

type fakeOfficeProvider struct{}

func (fakeOfficeProvider) OfficeLocation(_ context.Context) (float64, float64, float64, error) {
	return officeLat, officeLon, officeRadius, nil
}

type fakeWfhLookup struct {
	approved bool
}

func (f *fakeWfhLookup) HasApprovedWfh(_ context.Context, _ string, _ time.Time) (bool, error) {
	return f.approved, nil
}

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type clockFixture struct {
	repo     *fakeAttendanceRepo
	shiftSvc *fakeShiftService
	holidays *fakeHolidayLookup
	wfh      *fakeWfhLookup
	tx       *passthroughTxManager
	service  attendance.Service
}

func mustClock(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", value)
	require.NoError(t, err)
	return &parsed
}

// newClockFixture resolves every date to a fixed 09:00-17:00 shift with a
// 15 minute late tolerance.
func newClockFixture(t *testing.T) *clockFixture {
	t.Helper()

	pattern := shift.ShiftPattern{
		ID:                         "pat-1",
		ShiftType:                  shift.ShiftTypeFixed,
		LateToleranceMinutes:       15,
		EarlyLeaveToleranceMinutes: 10,
		IsOvertimeAllowed:          true,
		LateDeductionPerMinute:     decimal.NewFromInt(1000),
		LateDeductionMaxAmount:     decimal.NewFromInt(100000),
	}
	wh := shift.WorkingHours{
		ID:                 "wh-day",
		Code:               "WH_DAY",
		StartTime:          mustClock(t, "09:00"),
		EndTime:            mustClock(t, "17:00"),
		RequiredNetMinutes: 420,
	}

	f := &clockFixture{
		repo: &fakeAttendanceRepo{},
		shiftSvc: &fakeShiftService{res: shift.Resolution{
			WorkingHours:          &wh,
			ShiftPattern:          &pattern,
			IsWorkingDay:          true,
			IsOvertimeAllowed:     true,
			IsAttendanceMandatory: true,
			LateToleranceMinutes:  15,
		}},
		holidays: &fakeHolidayLookup{},
		wfh:      &fakeWfhLookup{},
		tx:       &passthroughTxManager{},
	}
	f.service = NewService(f.repo, f.shiftSvc, f.holidays, fakeOfficeProvider{}, f.wfh, f.tx)
	return f
}

func atOffice() attendance.ClockInRequest {
	return attendance.ClockInRequest{Latitude: officeLat, Longitude: officeLon}
}

func day(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, time.UTC)
}

func TestClockInOnTime(t *testing.T) {
	f := newClockFixture(t)

	record, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(8, 55))
	require.NoError(t, err)

	assert.False(t, record.IsLate)
	assert.Zero(t, record.LateMinutes)
	assert.Equal(t, attendance.StatusPresent, record.Status)
	assert.Equal(t, 420, record.RequiredWorkMinutes)
	require.NotNil(t, record.WorkingHoursID)
	assert.Equal(t, "wh-day", *record.WorkingHoursID)
}

func TestClockInWithinToleranceIsNotLate(t *testing.T) {
	f := newClockFixture(t)

	// 09:15 is exactly the tolerant boundary.
	record, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 15))
	require.NoError(t, err)

	assert.False(t, record.IsLate)
	assert.Equal(t, attendance.StatusPresent, record.Status)
}

func TestClockInPastToleranceIsLate(t *testing.T) {
	f := newClockFixture(t)

	record, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 45))
	require.NoError(t, err)

	assert.True(t, record.IsLate)
	assert.Equal(t, 30, record.LateMinutes)
	assert.Equal(t, attendance.StatusLate, record.Status)
	assert.True(t, record.LateDeduction.Equal(decimal.NewFromInt(30000)))
}

func TestClockInTwiceSameDay(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)

	_, err = f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(10, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockInTooEarly(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(7, 30))
	assert.ErrorIs(t, err, attendance.ErrTooEarlyToClockIn)

	// One hour before start is accepted.
	_, err = f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(8, 0))
	assert.NoError(t, err)
}

func TestClockInAfterShiftEnd(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(17, 1))
	assert.ErrorIs(t, err, attendance.ErrTooLateToClockIn)
}

func TestClockInNonWorkingDay(t *testing.T) {
	f := newClockFixture(t)
	f.shiftSvc.res = shift.Resolution{}

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	assert.ErrorIs(t, err, attendance.ErrNonWorkingDay)
}

func TestClockInHolidayBlocked(t *testing.T) {
	f := newClockFixture(t)
	f.holidays.national = true

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	assert.ErrorIs(t, err, attendance.ErrHolidayBlocked)
}

func TestClockInHolidayOverriddenByPattern(t *testing.T) {
	f := newClockFixture(t)
	f.holidays.national = true
	f.shiftSvc.res.ShiftPattern.OverrideNationalHoliday = true

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	assert.NoError(t, err)
}

func TestClockInHolidayCategoriesCheckedIndependently(t *testing.T) {
	f := newClockFixture(t)
	// National overridden, but the same date is also joint leave.
	f.holidays.national = true
	f.holidays.jointLeave = true
	f.shiftSvc.res.ShiftPattern.OverrideNationalHoliday = true

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	assert.ErrorIs(t, err, attendance.ErrHolidayBlocked)
}

func TestClockInOutsideGeofence(t *testing.T) {
	f := newClockFixture(t)

	// ~111 meters north of the office with a 100 meter radius.
	req := attendance.ClockInRequest{Latitude: officeLat - 0.0010, Longitude: officeLon}
	_, err := f.service.ClockIn(context.Background(), "emp-1", req, day(9, 0))
	assert.ErrorIs(t, err, attendance.ErrLocationOutOfRange)
}

func TestClockInWfhPatternRequiresApprovedRequest(t *testing.T) {
	f := newClockFixture(t)
	f.shiftSvc.res.IsWfhAllowed = true

	// WFH-enabled shift with no approved request is rejected, no matter
	// where the employee clocks in from.
	remote := attendance.ClockInRequest{Latitude: 10, Longitude: 10}
	_, err := f.service.ClockIn(context.Background(), "emp-1", remote, day(9, 0))
	assert.ErrorIs(t, err, attendance.ErrWfhNotApproved)

	_, err = f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	assert.ErrorIs(t, err, attendance.ErrWfhNotApproved)
}

func TestClockInWfhApprovedSkipsGeofence(t *testing.T) {
	f := newClockFixture(t)
	f.shiftSvc.res.IsWfhAllowed = true
	f.wfh.approved = true

	remote := attendance.ClockInRequest{Latitude: 10, Longitude: 10}
	record, err := f.service.ClockIn(context.Background(), "emp-1", remote, day(9, 0))
	require.NoError(t, err)
	assert.True(t, record.IsWfh)
}

func TestClockInWfhApprovalIgnoredWhenPatternForbids(t *testing.T) {
	f := newClockFixture(t)
	f.wfh.approved = true

	// The shift does not allow WFH, so the approved request changes nothing:
	// the geofence still applies.
	remote := attendance.ClockInRequest{Latitude: 10, Longitude: 10}
	_, err := f.service.ClockIn(context.Background(), "emp-1", remote, day(9, 0))
	assert.ErrorIs(t, err, attendance.ErrLocationOutOfRange)

	record, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)
	assert.False(t, record.IsWfh)
}

func TestClockInSecondsLateStaysPresent(t *testing.T) {
	f := newClockFixture(t)

	// 30 seconds past the tolerant boundary truncates to zero late minutes.
	at := time.Date(2026, 3, 9, 9, 15, 30, 0, time.UTC)
	record, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), at)
	require.NoError(t, err)

	assert.False(t, record.IsLate)
	assert.Zero(t, record.LateMinutes)
	assert.Equal(t, attendance.StatusPresent, record.Status)
	assert.True(t, record.LateDeduction.IsZero())
}

func TestClockInRunsInTransaction(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.calls)
}

func TestClockInConcurrentInsertLosesCleanly(t *testing.T) {
	f := newClockFixture(t)
	// A concurrent clock-in commits between the existence check and the
	// insert; the repository surfaces the unique violation as the sentinel.
	f.repo.createErr = attendance.ErrAlreadyClockedIn

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockOutFullDay(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)

	record, err := f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, day(17, 0))
	require.NoError(t, err)

	assert.False(t, record.IsEarlyLeave)
	assert.False(t, record.IsOvertime)
	assert.Equal(t, 480, record.ActualWorkMinutes)
	assert.Zero(t, record.UnderworkMinutes)
	assert.True(t, record.UnderworkDeduction.IsZero())
}

func TestClockOutEarlyLeave(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)

	record, err := f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, day(16, 0))
	require.NoError(t, err)

	assert.True(t, record.IsEarlyLeave)
	assert.Equal(t, 60, record.EarlyLeaveMinutes)
	assert.False(t, record.IsOvertime)
}

func TestClockOutWithinEarlyLeaveTolerance(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)

	// 16:55 with a 10 minute tolerance is not an early leave.
	record, err := f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, day(16, 55))
	require.NoError(t, err)

	assert.False(t, record.IsEarlyLeave)
}

func TestClockOutOvertime(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)

	record, err := f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, day(19, 0))
	require.NoError(t, err)

	assert.True(t, record.IsOvertime)
	assert.Equal(t, 120, record.OvertimeMinutes)
}

func TestClockOutUnderwork(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)

	record, err := f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, day(13, 0))
	require.NoError(t, err)

	assert.Equal(t, 240, record.ActualWorkMinutes)
	assert.Equal(t, 180, record.UnderworkMinutes)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, day(17, 0))
	assert.ErrorIs(t, err, attendance.ErrNoClockInRecord)
}

func TestClockOutTwice(t *testing.T) {
	f := newClockFixture(t)

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(9, 0))
	require.NoError(t, err)
	_, err = f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, day(17, 0))
	require.NoError(t, err)

	_, err = f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, day(18, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestOvernightClockOutAfterMidnight(t *testing.T) {
	f := newClockFixture(t)
	f.shiftSvc.res.WorkingHours = &shift.WorkingHours{
		ID:          "wh-night",
		Code:        "WH_NIGHT",
		StartTime:   mustClock(t, "22:00"),
		EndTime:     mustClock(t, "06:00"),
		IsOvernight: true,
	}

	_, err := f.service.ClockIn(context.Background(), "emp-1", atOffice(), day(22, 0))
	require.NoError(t, err)

	// Clock out at 06:00 the next calendar day closes the open record.
	out := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	record, err := f.service.ClockOut(context.Background(), "emp-1", attendance.ClockOutRequest{
		Latitude: officeLat, Longitude: officeLon,
	}, out)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), record.Date)
	assert.Equal(t, 480, record.ActualWorkMinutes)
	assert.False(t, record.IsEarlyLeave)
	assert.False(t, record.IsOvertime)
}

func TestGetTodayReturnsNilWithoutRecord(t *testing.T) {
	f := newClockFixture(t)

	record, err := f.service.GetToday(context.Background(), "emp-1", day(12, 0))
	require.NoError(t, err)
	assert.Nil(t, record)
}
