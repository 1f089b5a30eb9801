package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.email, e.password_hash, e.first_name, e.last_name, e.mobile,
	e.title_id, e.manager_id, e.is_admin, e.holidays_total, e.holidays_left,
	e.created_at, e.updated_at,
	t.name AS title_name,
	m.first_name || ' ' || m.last_name AS manager_name
`

const employeeJoins = `
	FROM employees e
	LEFT JOIN titles t ON e.title_id = t.id
	LEFT JOIN employees m ON e.manager_id = m.id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Email, &e.PasswordHash, &e.FirstName, &e.LastName, &e.Mobile,
		&e.TitleID, &e.ManagerID, &e.IsAdmin, &e.HolidaysTotal, &e.HolidaysLeft,
		&e.CreatedAt, &e.UpdatedAt,
		&e.TitleName,
		&e.ManagerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}

	query := `
		INSERT INTO employees (
			id, email, password_hash, first_name, last_name, mobile,
			title_id, manager_id, is_admin, holidays_total, holidays_left,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID, emp.Email, emp.PasswordHash, emp.FirstName, emp.LastName, emp.Mobile,
		emp.TitleID, emp.ManagerID, emp.IsAdmin, emp.HolidaysTotal, emp.HolidaysLeft,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + employeeColumns + employeeJoins + " WHERE e.id = $1"
	return scanEmployee(q.QueryRow(ctx, query, id))
}

func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + employeeColumns + employeeJoins + " WHERE LOWER(e.email) = LOWER($1)"
	return scanEmployee(q.QueryRow(ctx, query, email))
}

func (r *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM employees WHERE LOWER(email) = LOWER($1))", email,
	).Scan(&exists)
	return exists, err
}

func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeColumns + employeeJoins + " ORDER BY e.first_name, e.last_name"
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepositoryImpl) ListDirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeColumns + employeeJoins + " WHERE e.manager_id = $1 ORDER BY e.first_name, e.last_name"
	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return employees, nil
}

func (r *employeeRepositoryImpl) IsManager(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM employees WHERE manager_id = $1)", employeeID,
	).Scan(&exists)
	return exists, err
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.FirstName != nil {
		updates = append(updates, fmt.Sprintf("first_name = $%d", argIdx))
		args = append(args, *req.FirstName)
		argIdx++
	}
	if req.LastName != nil {
		updates = append(updates, fmt.Sprintf("last_name = $%d", argIdx))
		args = append(args, *req.LastName)
		argIdx++
	}
	if req.Mobile != nil {
		updates = append(updates, fmt.Sprintf("mobile = $%d", argIdx))
		args = append(args, *req.Mobile)
		argIdx++
	}
	if req.TitleID != nil {
		updates = append(updates, fmt.Sprintf("title_id = $%d", argIdx))
		args = append(args, *req.TitleID)
		argIdx++
	}
	if req.ManagerID != nil {
		updates = append(updates, fmt.Sprintf("manager_id = $%d", argIdx))
		args = append(args, *req.ManagerID)
		argIdx++
	}
	if req.IsAdmin != nil {
		updates = append(updates, fmt.Sprintf("is_admin = $%d", argIdx))
		args = append(args, *req.IsAdmin)
		argIdx++
	}
	if req.HolidaysTotal != nil {
		updates = append(updates, fmt.Sprintf("holidays_total = $%d", argIdx))
		args = append(args, *req.HolidaysTotal)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for employee update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, id)

	sql := "UPDATE employees SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	return nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) AdjustHolidaysLeft(ctx context.Context, id string, delta int) error {
	q := GetQuerier(ctx, r.db)

	if delta < 0 {
		// Debit only if the balance stays non-negative.
		commandTag, err := q.Exec(ctx, `
			UPDATE employees
			SET holidays_left = holidays_left + $2, updated_at = NOW()
			WHERE id = $1 AND holidays_left + $2 >= 0
		`, id, delta)
		if err != nil {
			return fmt.Errorf("failed to debit holidays for employee %s: %w", id, err)
		}
		if commandTag.RowsAffected() != 1 {
			exists := false
			if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", id).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return employee.ErrEmployeeNotFound
			}
			return employee.ErrInsufficientHolidays
		}
		return nil
	}

	// Credit, clamped at the granted allowance.
	commandTag, err := q.Exec(ctx, `
		UPDATE employees
		SET holidays_left = LEAST(holidays_left + $2, holidays_total), updated_at = NOW()
		WHERE id = $1
	`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to credit holidays for employee %s: %w", id, err)
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
