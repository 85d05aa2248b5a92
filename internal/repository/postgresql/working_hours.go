package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campushr/hris-engine-go/internal/domain/shift"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

type workingHoursRepository struct {
	db *database.DB
}

func NewWorkingHoursRepository(db *database.DB) shift.WorkingHoursRepository {
	return &workingHoursRepository{db: db}
}

const workingHoursColumns = `
	id, name, code, description, start_time, end_time, is_overnight,
	break_duration_minutes, required_net_minutes, created_at, updated_at
`

func (r *workingHoursRepository) Create(ctx context.Context, wh shift.WorkingHours) (shift.WorkingHours, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO working_hours (
			id, name, code, description, start_time, end_time, is_overnight,
			break_duration_minutes, required_net_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		wh.ID,
		wh.Name,
		wh.Code,
		wh.Description,
		wh.StartTime,
		wh.EndTime,
		wh.IsOvernight,
		wh.BreakDurationMinutes,
		wh.RequiredNetMinutes,
	).Scan(&wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		return shift.WorkingHours{}, fmt.Errorf("failed to create working hours: %w", err)
	}

	return wh, nil
}

func (r *workingHoursRepository) GetByID(ctx context.Context, id string) (shift.WorkingHours, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + workingHoursColumns + `
		FROM working_hours
		WHERE id = $1 AND deleted_at IS NULL
	`

	var wh shift.WorkingHours
	err := q.QueryRow(ctx, query, id).Scan(
		&wh.ID, &wh.Name, &wh.Code, &wh.Description, &wh.StartTime, &wh.EndTime, &wh.IsOvernight,
		&wh.BreakDurationMinutes, &wh.RequiredNetMinutes, &wh.CreatedAt, &wh.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.WorkingHours{}, shift.ErrWorkingHoursNotFound
		}
		return shift.WorkingHours{}, fmt.Errorf("failed to get working hours: %w", err)
	}

	return wh, nil
}

func (r *workingHoursRepository) List(ctx context.Context) ([]shift.WorkingHours, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + workingHoursColumns + `
		FROM working_hours
		WHERE deleted_at IS NULL
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	defer rows.Close()

	var list []shift.WorkingHours
	for rows.Next() {
		var wh shift.WorkingHours
		err := rows.Scan(
			&wh.ID, &wh.Name, &wh.Code, &wh.Description, &wh.StartTime, &wh.EndTime, &wh.IsOvernight,
			&wh.BreakDurationMinutes, &wh.RequiredNetMinutes, &wh.CreatedAt, &wh.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan working hours: %w", err)
		}
		list = append(list, wh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate working hours: %w", err)
	}

	return list, nil
}

func (r *workingHoursRepository) IsReferencedByPackage(ctx context.Context, id string) (bool, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM shift_packages
			WHERE deleted_at IS NULL
			  AND (monday_working_hours_id = $1
				OR tuesday_working_hours_id = $1
				OR wednesday_working_hours_id = $1
				OR thursday_working_hours_id = $1
				OR friday_working_hours_id = $1
				OR saturday_working_hours_id = $1
				OR sunday_working_hours_id = $1)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check working hours references: %w", err)
	}

	return exists, nil
}
