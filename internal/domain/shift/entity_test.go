package shift

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", value)
	require.NoError(t, err)
	return &parsed
}

func TestWorkingHoursWorkDurationMinutes(t *testing.T) {
	t.Run("day shift", func(t *testing.T) {
		wh := WorkingHours{StartTime: clock(t, "09:00"), EndTime: clock(t, "17:00")}
		assert.Equal(t, 480, wh.WorkDurationMinutes())
	})

	t.Run("overnight shift crosses midnight", func(t *testing.T) {
		wh := WorkingHours{StartTime: clock(t, "22:00"), EndTime: clock(t, "06:00"), IsOvernight: true}
		assert.Equal(t, 480, wh.WorkDurationMinutes())
	})

	t.Run("off sentinel has no duration", func(t *testing.T) {
		wh := WorkingHours{Code: OffCode}
		assert.Equal(t, 0, wh.WorkDurationMinutes())
		assert.True(t, wh.IsOff())
	})
}

func TestWorkingHoursNetWorkDurationMinutes(t *testing.T) {
	t.Run("configured net minutes win", func(t *testing.T) {
		wh := WorkingHours{
			StartTime:            clock(t, "09:00"),
			EndTime:              clock(t, "17:00"),
			BreakDurationMinutes: 60,
			RequiredNetMinutes:   400,
		}
		assert.Equal(t, 400, wh.NetWorkDurationMinutes())
	})

	t.Run("falls back to gross minus break", func(t *testing.T) {
		wh := WorkingHours{
			StartTime:            clock(t, "09:00"),
			EndTime:              clock(t, "17:00"),
			BreakDurationMinutes: 60,
		}
		assert.Equal(t, 420, wh.NetWorkDurationMinutes())
	})

	t.Run("never negative", func(t *testing.T) {
		wh := WorkingHours{
			StartTime:            clock(t, "09:00"),
			EndTime:              clock(t, "10:00"),
			BreakDurationMinutes: 120,
		}
		assert.Equal(t, 0, wh.NetWorkDurationMinutes())
	})
}

func TestShiftPackageWorkingHoursIDByDay(t *testing.T) {
	saturday := "wh-sat"
	pkg := ShiftPackage{
		MondayWorkingHoursID:    "wh-mon",
		TuesdayWorkingHoursID:   "wh-tue",
		WednesdayWorkingHoursID: "wh-wed",
		ThursdayWorkingHoursID:  "wh-thu",
		FridayWorkingHoursID:    "wh-fri",
		SaturdayWorkingHoursID:  &saturday,
	}

	require.NotNil(t, pkg.WorkingHoursIDByDay(time.Monday))
	assert.Equal(t, "wh-mon", *pkg.WorkingHoursIDByDay(time.Monday))
	require.NotNil(t, pkg.WorkingHoursIDByDay(time.Saturday))
	assert.Equal(t, "wh-sat", *pkg.WorkingHoursIDByDay(time.Saturday))
	assert.Nil(t, pkg.WorkingHoursIDByDay(time.Sunday))
}

func TestShiftPatternCalculateLateDeduction(t *testing.T) {
	pattern := ShiftPattern{
		LateDeductionPerMinute: decimal.NewFromInt(1000),
		LateDeductionMaxAmount: decimal.NewFromInt(50000),
	}

	t.Run("linear below cap", func(t *testing.T) {
		assert.True(t, pattern.CalculateLateDeduction(30).Equal(decimal.NewFromInt(30000)))
	})

	t.Run("capped at max amount", func(t *testing.T) {
		assert.True(t, pattern.CalculateLateDeduction(120).Equal(decimal.NewFromInt(50000)))
	})

	t.Run("zero minutes means zero", func(t *testing.T) {
		assert.True(t, pattern.CalculateLateDeduction(0).IsZero())
	})

	t.Run("negative minutes means zero", func(t *testing.T) {
		assert.True(t, pattern.CalculateLateDeduction(-5).IsZero())
	})

	t.Run("zero cap means uncapped", func(t *testing.T) {
		uncapped := ShiftPattern{LateDeductionPerMinute: decimal.NewFromInt(1000)}
		assert.True(t, uncapped.CalculateLateDeduction(500).Equal(decimal.NewFromInt(500000)))
	})

	t.Run("zero rate means zero", func(t *testing.T) {
		free := ShiftPattern{}
		assert.True(t, free.CalculateLateDeduction(90).IsZero())
	})
}

func TestEmployeeShiftSettingCoversDate(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("open-ended setting", func(t *testing.T) {
		setting := EmployeeShiftSetting{EffectiveFrom: from}
		assert.True(t, setting.CoversDate(from))
		assert.True(t, setting.CoversDate(from.AddDate(1, 0, 0)))
		assert.False(t, setting.CoversDate(from.AddDate(0, 0, -1)))
	})

	t.Run("bounded setting includes both ends", func(t *testing.T) {
		setting := EmployeeShiftSetting{EffectiveFrom: from, EffectiveTo: &to}
		assert.True(t, setting.CoversDate(from))
		assert.True(t, setting.CoversDate(to))
		assert.False(t, setting.CoversDate(to.AddDate(0, 0, 1)))
	})
}

func TestResolutionAnchoredTimes(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	t.Run("day shift anchors on the date", func(t *testing.T) {
		res := Resolution{
			Date:         date,
			WorkingHours: &WorkingHours{StartTime: clock(t, "09:00"), EndTime: clock(t, "17:00")},
			IsWorkingDay: true,
		}

		require.NotNil(t, res.StartTime())
		require.NotNil(t, res.EndTime())
		assert.Equal(t, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), *res.StartTime())
		assert.Equal(t, time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC), *res.EndTime())
	})

	t.Run("overnight shift ends the next day", func(t *testing.T) {
		res := Resolution{
			Date:         date,
			WorkingHours: &WorkingHours{StartTime: clock(t, "22:00"), EndTime: clock(t, "06:00"), IsOvernight: true},
			IsWorkingDay: true,
		}

		require.NotNil(t, res.EndTime())
		assert.Equal(t, time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC), *res.EndTime())
	})

	t.Run("off day has no times", func(t *testing.T) {
		res := Resolution{Date: date}
		assert.Nil(t, res.StartTime())
		assert.Nil(t, res.EndTime())
	})
}
