package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campushr/hris-engine-go/internal/domain/attendance"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, working_hours_id, shift_pattern_id,
	clock_in_time, clock_in_latitude, clock_in_longitude, clock_in_device,
	clock_out_time, clock_out_latitude, clock_out_longitude, clock_out_device,
	is_wfh, is_late, late_minutes, late_deduction,
	is_early_leave, early_leave_minutes,
	is_overtime, overtime_minutes,
	actual_work_minutes, required_work_minutes,
	underwork_minutes, underwork_deduction,
	status, created_at, updated_at
`

func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, working_hours_id, shift_pattern_id,
			clock_in_time, clock_in_latitude, clock_in_longitude, clock_in_device,
			is_wfh, is_late, late_minutes, late_deduction,
			required_work_minutes, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.WorkingHoursID,
		record.ShiftPatternID,
		record.ClockInTime,
		record.ClockInLatitude,
		record.ClockInLongitude,
		record.ClockInDevice,
		record.IsWfh,
		record.IsLate,
		record.LateMinutes,
		record.LateDeduction,
		record.RequiredWorkMinutes,
		record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		// The unique (employee_id, date) index catches the concurrent
		// clock-in the pre-insert check could not see.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

func (r *attendanceRepository) Update(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET clock_out_time = $2,
			clock_out_latitude = $3,
			clock_out_longitude = $4,
			clock_out_device = $5,
			is_early_leave = $6,
			early_leave_minutes = $7,
			is_overtime = $8,
			overtime_minutes = $9,
			actual_work_minutes = $10,
			underwork_minutes = $11,
			underwork_deduction = $12,
			status = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.ClockOutTime,
		record.ClockOutLatitude,
		record.ClockOutLongitude,
		record.ClockOutDevice,
		record.IsEarlyLeave,
		record.EarlyLeaveMinutes,
		record.IsOvertime,
		record.OvertimeMinutes,
		record.ActualWorkMinutes,
		record.UnderworkMinutes,
		record.UnderworkDeduction,
		record.Status,
	).Scan(&record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return record, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE id = $1
	`

	record, err := scanAttendanceRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return record, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	record, err := scanAttendanceRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by date: %w", err)
	}

	return &record, nil
}

func (r *attendanceRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND clock_in_time IS NOT NULL
		  AND clock_out_time IS NULL
		ORDER BY clock_in_time DESC
		LIMIT 1
	`

	record, err := scanAttendanceRecord(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open attendance record: %w", err)
	}

	return &record, nil
}

func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var list []attendance.Record
	for rows.Next() {
		record, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		list = append(list, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return list, nil
}

func scanAttendanceRecord(row pgx.Row) (attendance.Record, error) {
	var record attendance.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.WorkingHoursID, &record.ShiftPatternID,
		&record.ClockInTime, &record.ClockInLatitude, &record.ClockInLongitude, &record.ClockInDevice,
		&record.ClockOutTime, &record.ClockOutLatitude, &record.ClockOutLongitude, &record.ClockOutDevice,
		&record.IsWfh, &record.IsLate, &record.LateMinutes, &record.LateDeduction,
		&record.IsEarlyLeave, &record.EarlyLeaveMinutes,
		&record.IsOvertime, &record.OvertimeMinutes,
		&record.ActualWorkMinutes, &record.RequiredWorkMinutes,
		&record.UnderworkMinutes, &record.UnderworkDeduction,
		&record.Status, &record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}
