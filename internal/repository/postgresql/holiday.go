package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/campushr/hris-engine-go/internal/domain/holiday"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) ListByDate(ctx context.Context, date time.Time) ([]holiday.Holiday, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, name, date, type, created_at, updated_at
		FROM holidays
		WHERE date = $1 AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var list []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.Type, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		list = append(list, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return list, nil
}
