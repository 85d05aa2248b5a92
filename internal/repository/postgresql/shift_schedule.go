package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campushr/hris-engine-go/internal/domain/shift"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

type shiftScheduleRepository struct {
	db *database.DB
}

func NewShiftScheduleRepository(db *database.DB) shift.ShiftScheduleRepository {
	return &shiftScheduleRepository{db: db}
}

const shiftScheduleColumns = `
	id, employee_id, schedule_date, working_hours_id,
	override_is_wfh, override_is_overtime_allowed, override_is_attendance_mandatory,
	notes, created_by, created_at, updated_at
`

func (r *shiftScheduleRepository) Create(ctx context.Context, schedule shift.EmployeeShiftSchedule) (shift.EmployeeShiftSchedule, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO employee_shift_schedules (
			id, employee_id, schedule_date, working_hours_id,
			override_is_wfh, override_is_overtime_allowed, override_is_attendance_mandatory,
			notes, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		schedule.ID,
		schedule.EmployeeID,
		schedule.ScheduleDate,
		schedule.WorkingHoursID,
		schedule.OverrideIsWfh,
		schedule.OverrideIsOvertimeAllowed,
		schedule.OverrideIsAttendanceMandatory,
		schedule.Notes,
		schedule.CreatedBy,
	).Scan(&schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return shift.EmployeeShiftSchedule{}, fmt.Errorf("failed to create override schedule: %w", err)
	}

	return schedule, nil
}

func (r *shiftScheduleRepository) Update(ctx context.Context, schedule shift.EmployeeShiftSchedule) (shift.EmployeeShiftSchedule, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE employee_shift_schedules
		SET working_hours_id = $2,
			override_is_wfh = $3,
			override_is_overtime_allowed = $4,
			override_is_attendance_mandatory = $5,
			notes = $6,
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		schedule.ID,
		schedule.WorkingHoursID,
		schedule.OverrideIsWfh,
		schedule.OverrideIsOvertimeAllowed,
		schedule.OverrideIsAttendanceMandatory,
		schedule.Notes,
	).Scan(&schedule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.EmployeeShiftSchedule{}, shift.ErrOverrideNotFound
		}
		return shift.EmployeeShiftSchedule{}, fmt.Errorf("failed to update override schedule: %w", err)
	}

	return schedule, nil
}

func (r *shiftScheduleRepository) GetByID(ctx context.Context, id string) (shift.EmployeeShiftSchedule, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftScheduleColumns + `
		FROM employee_shift_schedules
		WHERE id = $1 AND deleted_at IS NULL
	`

	var schedule shift.EmployeeShiftSchedule
	err := q.QueryRow(ctx, query, id).Scan(
		&schedule.ID, &schedule.EmployeeID, &schedule.ScheduleDate, &schedule.WorkingHoursID,
		&schedule.OverrideIsWfh, &schedule.OverrideIsOvertimeAllowed, &schedule.OverrideIsAttendanceMandatory,
		&schedule.Notes, &schedule.CreatedBy, &schedule.CreatedAt, &schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.EmployeeShiftSchedule{}, shift.ErrOverrideNotFound
		}
		return shift.EmployeeShiftSchedule{}, fmt.Errorf("failed to get override schedule: %w", err)
	}

	return schedule, nil
}

func (r *shiftScheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*shift.EmployeeShiftSchedule, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftScheduleColumns + `
		FROM employee_shift_schedules
		WHERE employee_id = $1 AND schedule_date = $2 AND deleted_at IS NULL
		LIMIT 1
	`

	var schedule shift.EmployeeShiftSchedule
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&schedule.ID, &schedule.EmployeeID, &schedule.ScheduleDate, &schedule.WorkingHoursID,
		&schedule.OverrideIsWfh, &schedule.OverrideIsOvertimeAllowed, &schedule.OverrideIsAttendanceMandatory,
		&schedule.Notes, &schedule.CreatedBy, &schedule.CreatedAt, &schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get override schedule by date: %w", err)
	}

	return &schedule, nil
}

func (r *shiftScheduleRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]shift.EmployeeShiftSchedule, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftScheduleColumns + `
		FROM employee_shift_schedules
		WHERE employee_id = $1
		  AND schedule_date BETWEEN $2 AND $3
		  AND deleted_at IS NULL
		ORDER BY schedule_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list override schedules: %w", err)
	}
	defer rows.Close()

	var list []shift.EmployeeShiftSchedule
	for rows.Next() {
		var schedule shift.EmployeeShiftSchedule
		err := rows.Scan(
			&schedule.ID, &schedule.EmployeeID, &schedule.ScheduleDate, &schedule.WorkingHoursID,
			&schedule.OverrideIsWfh, &schedule.OverrideIsOvertimeAllowed, &schedule.OverrideIsAttendanceMandatory,
			&schedule.Notes, &schedule.CreatedBy, &schedule.CreatedAt, &schedule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override schedule: %w", err)
		}
		list = append(list, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate override schedules: %w", err)
	}

	return list, nil
}

func (r *shiftScheduleRepository) SoftDelete(ctx context.Context, id string) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE employee_shift_schedules
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete override schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrOverrideNotFound
	}

	return nil
}
