package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campushr/hris-engine-go/internal/domain/shift"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

type shiftPackageRepository struct {
	db *database.DB
}

func NewShiftPackageRepository(db *database.DB) shift.ShiftPackageRepository {
	return &shiftPackageRepository{db: db}
}

const shiftPackageColumns = `
	id, name, code, description,
	monday_working_hours_id, tuesday_working_hours_id, wednesday_working_hours_id,
	thursday_working_hours_id, friday_working_hours_id,
	saturday_working_hours_id, sunday_working_hours_id,
	created_at, updated_at
`

func (r *shiftPackageRepository) Create(ctx context.Context, pkg shift.ShiftPackage) (shift.ShiftPackage, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO shift_packages (
			id, name, code, description,
			monday_working_hours_id, tuesday_working_hours_id, wednesday_working_hours_id,
			thursday_working_hours_id, friday_working_hours_id,
			saturday_working_hours_id, sunday_working_hours_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Code,
		pkg.Description,
		pkg.MondayWorkingHoursID,
		pkg.TuesdayWorkingHoursID,
		pkg.WednesdayWorkingHoursID,
		pkg.ThursdayWorkingHoursID,
		pkg.FridayWorkingHoursID,
		pkg.SaturdayWorkingHoursID,
		pkg.SundayWorkingHoursID,
	).Scan(&pkg.CreatedAt, &pkg.UpdatedAt)
	if err != nil {
		return shift.ShiftPackage{}, fmt.Errorf("failed to create shift package: %w", err)
	}

	return pkg, nil
}

func (r *shiftPackageRepository) GetByID(ctx context.Context, id string) (shift.ShiftPackage, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftPackageColumns + `
		FROM shift_packages
		WHERE id = $1 AND deleted_at IS NULL
	`

	var pkg shift.ShiftPackage
	err := q.QueryRow(ctx, query, id).Scan(
		&pkg.ID, &pkg.Name, &pkg.Code, &pkg.Description,
		&pkg.MondayWorkingHoursID, &pkg.TuesdayWorkingHoursID, &pkg.WednesdayWorkingHoursID,
		&pkg.ThursdayWorkingHoursID, &pkg.FridayWorkingHoursID,
		&pkg.SaturdayWorkingHoursID, &pkg.SundayWorkingHoursID,
		&pkg.CreatedAt, &pkg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftPackage{}, shift.ErrShiftPackageNotFound
		}
		return shift.ShiftPackage{}, fmt.Errorf("failed to get shift package: %w", err)
	}

	return pkg, nil
}

func (r *shiftPackageRepository) List(ctx context.Context) ([]shift.ShiftPackage, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftPackageColumns + `
		FROM shift_packages
		WHERE deleted_at IS NULL
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift packages: %w", err)
	}
	defer rows.Close()

	var list []shift.ShiftPackage
	for rows.Next() {
		var pkg shift.ShiftPackage
		err := rows.Scan(
			&pkg.ID, &pkg.Name, &pkg.Code, &pkg.Description,
			&pkg.MondayWorkingHoursID, &pkg.TuesdayWorkingHoursID, &pkg.WednesdayWorkingHoursID,
			&pkg.ThursdayWorkingHoursID, &pkg.FridayWorkingHoursID,
			&pkg.SaturdayWorkingHoursID, &pkg.SundayWorkingHoursID,
			&pkg.CreatedAt, &pkg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift package: %w", err)
		}
		list = append(list, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift packages: %w", err)
	}

	return list, nil
}
