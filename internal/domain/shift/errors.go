package shift

import "errors"

var (
	ErrWorkingHoursNotFound = errors.New("working hours not found")
	ErrShiftPackageNotFound = errors.New("shift package not found")
	ErrShiftPatternNotFound = errors.New("shift pattern not found")
	ErrShiftSettingNotFound = errors.New("shift setting not found")
	ErrOverrideNotFound     = errors.New("override schedule not found")

	// ErrWorkingHoursInUse guards edits to a WorkingHours referenced by an
	// active ShiftPackage.
	ErrWorkingHoursInUse = errors.New("working hours is referenced by a shift package")
)
