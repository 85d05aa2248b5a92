package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campushr/hris-engine-go/internal/domain/shift"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

type shiftPatternRepository struct {
	db *database.DB
}

func NewShiftPatternRepository(db *database.DB) shift.ShiftPatternRepository {
	return &shiftPatternRepository{db: db}
}

const shiftPatternColumns = `
	id, name, code, description, shift_package_id, shift_type,
	flexible_window_start, flexible_window_end, flexible_required_hours,
	is_overtime_allowed, is_wfh_allowed, is_attendance_mandatory,
	late_tolerance_minutes, early_leave_tolerance_minutes,
	late_deduction_per_minute, late_deduction_max_amount,
	underwork_deduction_per_minute, underwork_deduction_max_amount,
	override_national_holiday, override_company_holiday,
	override_joint_leave, override_weekly_leave,
	created_at, updated_at
`

func (r *shiftPatternRepository) Create(ctx context.Context, pattern shift.ShiftPattern) (shift.ShiftPattern, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO shift_patterns (
			id, name, code, description, shift_package_id, shift_type,
			flexible_window_start, flexible_window_end, flexible_required_hours,
			is_overtime_allowed, is_wfh_allowed, is_attendance_mandatory,
			late_tolerance_minutes, early_leave_tolerance_minutes,
			late_deduction_per_minute, late_deduction_max_amount,
			underwork_deduction_per_minute, underwork_deduction_max_amount,
			override_national_holiday, override_company_holiday,
			override_joint_leave, override_weekly_leave
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		pattern.ID,
		pattern.Name,
		pattern.Code,
		pattern.Description,
		pattern.ShiftPackageID,
		pattern.ShiftType,
		pattern.FlexibleWindowStart,
		pattern.FlexibleWindowEnd,
		pattern.FlexibleRequiredHours,
		pattern.IsOvertimeAllowed,
		pattern.IsWfhAllowed,
		pattern.IsAttendanceMandatory,
		pattern.LateToleranceMinutes,
		pattern.EarlyLeaveToleranceMinutes,
		pattern.LateDeductionPerMinute,
		pattern.LateDeductionMaxAmount,
		pattern.UnderworkDeductionPerMinute,
		pattern.UnderworkDeductionMaxAmount,
		pattern.OverrideNationalHoliday,
		pattern.OverrideCompanyHoliday,
		pattern.OverrideJointLeave,
		pattern.OverrideWeeklyLeave,
	).Scan(&pattern.CreatedAt, &pattern.UpdatedAt)
	if err != nil {
		return shift.ShiftPattern{}, fmt.Errorf("failed to create shift pattern: %w", err)
	}

	return pattern, nil
}

func (r *shiftPatternRepository) GetByID(ctx context.Context, id string) (shift.ShiftPattern, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftPatternColumns + `
		FROM shift_patterns
		WHERE id = $1 AND deleted_at IS NULL
	`

	pattern, err := scanShiftPattern(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftPattern{}, shift.ErrShiftPatternNotFound
		}
		return shift.ShiftPattern{}, fmt.Errorf("failed to get shift pattern: %w", err)
	}

	return pattern, nil
}

func (r *shiftPatternRepository) List(ctx context.Context) ([]shift.ShiftPattern, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftPatternColumns + `
		FROM shift_patterns
		WHERE deleted_at IS NULL
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift patterns: %w", err)
	}
	defer rows.Close()

	var list []shift.ShiftPattern
	for rows.Next() {
		pattern, err := scanShiftPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift pattern: %w", err)
		}
		list = append(list, pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift patterns: %w", err)
	}

	return list, nil
}

func scanShiftPattern(row pgx.Row) (shift.ShiftPattern, error) {
	var pattern shift.ShiftPattern
	err := row.Scan(
		&pattern.ID, &pattern.Name, &pattern.Code, &pattern.Description,
		&pattern.ShiftPackageID, &pattern.ShiftType,
		&pattern.FlexibleWindowStart, &pattern.FlexibleWindowEnd, &pattern.FlexibleRequiredHours,
		&pattern.IsOvertimeAllowed, &pattern.IsWfhAllowed, &pattern.IsAttendanceMandatory,
		&pattern.LateToleranceMinutes, &pattern.EarlyLeaveToleranceMinutes,
		&pattern.LateDeductionPerMinute, &pattern.LateDeductionMaxAmount,
		&pattern.UnderworkDeductionPerMinute, &pattern.UnderworkDeductionMaxAmount,
		&pattern.OverrideNationalHoliday, &pattern.OverrideCompanyHoliday,
		&pattern.OverrideJointLeave, &pattern.OverrideWeeklyLeave,
		&pattern.CreatedAt, &pattern.UpdatedAt,
	)
	return pattern, err
}
