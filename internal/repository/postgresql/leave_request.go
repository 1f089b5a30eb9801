package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/netreply/attendance-backend-go/internal/domain/leave"
	"github.com/netreply/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.status,
	lr.manager_id, lr.reason, lr.created_at, lr.approved_at, lr.cancelled_at
`

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, start_date, end_date, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.StartDate, request.EndDate,
		request.Status, request.Reason,
	).Scan(&request.CreatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, false)
}

func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *leaveRequestRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	// The row lock variant cannot join: FOR UPDATE is not allowed with
	// nullable-side outer joins, so names are left unset there.
	query := "SELECT " + leaveRequestColumns + " FROM leave_requests lr WHERE lr.id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Status,
		&req.ManagerID, &req.Reason, &req.CreatedAt, &req.ApprovedAt, &req.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   m.first_name || ' ' || m.last_name AS manager_name
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		LEFT JOIN employees m ON lr.manager_id = m.id
		WHERE lr.employee_id = $1
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) ListPendingForManager(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   m.first_name || ' ' || m.last_name AS manager_name
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		LEFT JOIN employees m ON lr.manager_id = m.id
		WHERE e.manager_id = $1 AND lr.status = $2
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query, managerID, leave.LeaveRequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			AND status IN ('pending', 'approved')
			AND start_date <= $3
			AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&exists)
	return exists, err
}

func (r *leaveRequestRepositoryImpl) SetDecision(ctx context.Context, id string, status leave.LeaveRequestStatus, managerID string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, manager_id = $3, approved_at = $4
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, status, managerID, decidedAt).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to set decision for leave request %s: %w", id, err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) SetCancelled(ctx context.Context, id string, cancelledAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, cancelled_at = $3
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, leave.LeaveRequestStatusCancelled, cancelledAt).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to cancel leave request %s: %w", id, err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	// Date filters select requests whose range touches the bound, matching
	// the report semantics.
	if filter.StartDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.end_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.start_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `
		SELECT ` + leaveRequestColumns + `,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   m.first_name || ' ' || m.last_name AS manager_name
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		LEFT JOIN employees m ON lr.manager_id = m.id
	`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY lr.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Status,
			&req.ManagerID, &req.Reason, &req.CreatedAt, &req.ApprovedAt, &req.CancelledAt,
			&req.EmployeeName, &req.ManagerName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return requests, nil
}

func (r *leaveRequestRepositoryImpl) CountByEmployeeAndStatus(ctx context.Context, employeeID string, status leave.LeaveRequestStatus) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		"SELECT COUNT(*) FROM leave_requests WHERE employee_id = $1 AND status = $2",
		employeeID, status,
	).Scan(&count)
	return count, err
}

func (r *leaveRequestRepositoryImpl) CountPendingForManager(ctx context.Context, managerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE e.manager_id = $1 AND lr.status = $2
	`

	var count int64
	err := q.QueryRow(ctx, query, managerID, leave.LeaveRequestStatusPending).Scan(&count)
	return count, err
}
