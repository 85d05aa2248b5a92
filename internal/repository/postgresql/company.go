package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campushr/hris-engine-go/internal/domain/company"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

type officeLocationRepository struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) company.OfficeLocationRepository {
	return &officeLocationRepository{db: db}
}

func (r *officeLocationRepository) GetPrimary(ctx context.Context) (company.OfficeLocation, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, is_primary, created_at, updated_at
		FROM office_locations
		WHERE is_primary = TRUE AND deleted_at IS NULL
		LIMIT 1
	`

	var loc company.OfficeLocation
	err := q.QueryRow(ctx, query).Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude,
		&loc.RadiusMeters, &loc.IsPrimary, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.OfficeLocation{}, company.ErrOfficeLocationNotFound
		}
		return company.OfficeLocation{}, fmt.Errorf("failed to get primary office location: %w", err)
	}

	return loc, nil
}
