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

type shiftSettingRepository struct {
	db *database.DB
}

func NewShiftSettingRepository(db *database.DB) shift.ShiftSettingRepository {
	return &shiftSettingRepository{db: db}
}

const shiftSettingColumns = `
	id, employee_id, shift_pattern_id, effective_from, effective_to,
	reason, notes, created_by, created_at, updated_at
`

func (r *shiftSettingRepository) Create(ctx context.Context, setting shift.EmployeeShiftSetting) (shift.EmployeeShiftSetting, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO employee_shift_settings (
			id, employee_id, shift_pattern_id, effective_from, effective_to,
			reason, notes, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		setting.ID,
		setting.EmployeeID,
		setting.ShiftPatternID,
		setting.EffectiveFrom,
		setting.EffectiveTo,
		setting.Reason,
		setting.Notes,
		setting.CreatedBy,
	).Scan(&setting.CreatedAt, &setting.UpdatedAt)
	if err != nil {
		return shift.EmployeeShiftSetting{}, fmt.Errorf("failed to create shift setting: %w", err)
	}

	return setting, nil
}

func (r *shiftSettingRepository) FindActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*shift.EmployeeShiftSetting, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftSettingColumns + `
		FROM employee_shift_settings
		WHERE employee_id = $1
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		  AND deleted_at IS NULL
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var setting shift.EmployeeShiftSetting
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&setting.ID, &setting.EmployeeID, &setting.ShiftPatternID,
		&setting.EffectiveFrom, &setting.EffectiveTo,
		&setting.Reason, &setting.Notes, &setting.CreatedBy,
		&setting.CreatedAt, &setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active shift setting: %w", err)
	}

	return &setting, nil
}

func (r *shiftSettingRepository) FindOpenByEmployee(ctx context.Context, employeeID string) (*shift.EmployeeShiftSetting, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftSettingColumns + `
		FROM employee_shift_settings
		WHERE employee_id = $1
		  AND effective_to IS NULL
		  AND deleted_at IS NULL
		LIMIT 1
	`

	var setting shift.EmployeeShiftSetting
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&setting.ID, &setting.EmployeeID, &setting.ShiftPatternID,
		&setting.EffectiveFrom, &setting.EffectiveTo,
		&setting.Reason, &setting.Notes, &setting.CreatedBy,
		&setting.CreatedAt, &setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open shift setting: %w", err)
	}

	return &setting, nil
}

func (r *shiftSettingRepository) CloseSetting(ctx context.Context, id string, effectiveTo time.Time) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE employee_shift_settings
		SET effective_to = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, effectiveTo)
	if err != nil {
		return fmt.Errorf("failed to close shift setting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftSettingNotFound
	}

	return nil
}

func (r *shiftSettingRepository) ListByEmployee(ctx context.Context, employeeID string) ([]shift.EmployeeShiftSetting, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftSettingColumns + `
		FROM employee_shift_settings
		WHERE employee_id = $1 AND deleted_at IS NULL
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift settings: %w", err)
	}
	defer rows.Close()

	var list []shift.EmployeeShiftSetting
	for rows.Next() {
		var setting shift.EmployeeShiftSetting
		err := rows.Scan(
			&setting.ID, &setting.EmployeeID, &setting.ShiftPatternID,
			&setting.EffectiveFrom, &setting.EffectiveTo,
			&setting.Reason, &setting.Notes, &setting.CreatedBy,
			&setting.CreatedAt, &setting.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift setting: %w", err)
		}
		list = append(list, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift settings: %w", err)
	}

	return list, nil
}
