package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campushr/hris-engine-go/internal/domain/approval"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) approval.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `
	id, employee_id, kind, status, start_date, end_date, reason,
	leave_type_id, total_days, overtime_start, overtime_end,
	supervisor_id, supervisor_acted_by, supervisor_acted_at, supervisor_note,
	hr_acted_by, hr_acted_at, hr_note,
	cancelled_at, created_at, updated_at
`

func (r *requestRepository) Create(ctx context.Context, req approval.Request) (approval.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO approval_requests (
			id, employee_id, kind, status, start_date, end_date, reason,
			leave_type_id, total_days, overtime_start, overtime_end, supervisor_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID,
		req.EmployeeID,
		req.Kind,
		req.Status,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.LeaveTypeID,
		req.TotalDays,
		req.OvertimeStart,
		req.OvertimeEnd,
		req.SupervisorID,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return approval.Request{}, fmt.Errorf("failed to create approval request: %w", err)
	}

	return req, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (approval.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE id = $1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Request{}, approval.ErrRequestNotFound
		}
		return approval.Request{}, fmt.Errorf("failed to get approval request: %w", err)
	}

	return req, nil
}

// Transition performs the guarded status move. The WHERE clause carries the
// expected status so two concurrent approvers cannot both win: the loser's
// update matches zero rows and maps to ErrAlreadyProcessed.
func (r *requestRepository) Transition(ctx context.Context, id string, expected, next approval.Status, update approval.TransitionUpdate) (approval.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	var query string
	switch expected {
	case approval.StatusPendingSupervisor:
		query = `
			UPDATE approval_requests
			SET status = $3,
				supervisor_acted_by = $4,
				supervisor_acted_at = $5,
				supervisor_note = $6,
				cancelled_at = $7,
				updated_at = NOW()
			WHERE id = $1 AND status = $2
			RETURNING ` + requestColumns + `
		`
	default:
		query = `
			UPDATE approval_requests
			SET status = $3,
				hr_acted_by = $4,
				hr_acted_at = $5,
				hr_note = $6,
				cancelled_at = $7,
				updated_at = NOW()
			WHERE id = $1 AND status = $2
			RETURNING ` + requestColumns + `
		`
	}

	req, err := scanRequest(q.QueryRow(ctx, query, id, expected, next,
		update.ActedBy, update.ActedAt, update.Note, update.CancelledAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Request{}, approval.ErrAlreadyProcessed
		}
		return approval.Request{}, fmt.Errorf("failed to transition approval request: %w", err)
	}

	return req, nil
}

func (r *requestRepository) HasOverlapping(ctx context.Context, employeeID string, kind approval.Kind, start, end time.Time) (bool, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM approval_requests
			WHERE employee_id = $1
			  AND kind = $2
			  AND status IN ($3, $4, $5)
			  AND start_date <= $7
			  AND end_date >= $6
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, kind,
		approval.StatusPendingSupervisor, approval.StatusPendingHR, approval.StatusApproved,
		start, end,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping requests: %w", err)
	}

	return exists, nil
}

func (r *requestRepository) HasApprovedWfh(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM approval_requests
			WHERE employee_id = $1
			  AND kind = $2
			  AND status = $3
			  AND start_date <= $4
			  AND end_date >= $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, approval.KindWfh, approval.StatusApproved, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check approved wfh: %w", err)
	}

	return exists, nil
}

func (r *requestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]approval.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	return r.queryRequests(ctx, q, query, employeeID)
}

func (r *requestRepository) ListPendingForSupervisor(ctx context.Context, supervisorID string) ([]approval.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE supervisor_id = $1
		  AND status = $2
		ORDER BY created_at
	`

	return r.queryRequests(ctx, q, query, supervisorID, approval.StatusPendingSupervisor)
}

func (r *requestRepository) ListPendingForHR(ctx context.Context) ([]approval.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE status = $1
		ORDER BY created_at
	`

	return r.queryRequests(ctx, q, query, approval.StatusPendingHR)
}

func (r *requestRepository) queryRequests(ctx context.Context, q database.Querier, query string, args ...any) ([]approval.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval requests: %w", err)
	}
	defer rows.Close()

	var list []approval.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval request: %w", err)
		}
		list = append(list, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate approval requests: %w", err)
	}

	return list, nil
}

func scanRequest(row pgx.Row) (approval.Request, error) {
	var req approval.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Kind, &req.Status,
		&req.StartDate, &req.EndDate, &req.Reason,
		&req.LeaveTypeID, &req.TotalDays, &req.OvertimeStart, &req.OvertimeEnd,
		&req.SupervisorID, &req.SupervisorActedBy, &req.SupervisorActedAt, &req.SupervisorNote,
		&req.HrActedBy, &req.HrActedAt, &req.HrNote,
		&req.CancelledAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}
