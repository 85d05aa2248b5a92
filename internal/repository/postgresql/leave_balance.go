package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campushr/hris-engine-go/internal/domain/approval"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) approval.LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

func (r *leaveBalanceRepository) GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string, year int) (approval.LeaveBalance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, allocated, used, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var balance approval.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
		&balance.Allocated, &balance.Used, &balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.LeaveBalance{}, approval.ErrLeaveBalanceNotFound
		}
		return approval.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

func (r *leaveBalanceRepository) AddUsed(ctx context.Context, id string, days int) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used = used + $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, days)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrLeaveBalanceNotFound
	}

	return nil
}
