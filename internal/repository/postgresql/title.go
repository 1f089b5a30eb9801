package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/pkg/database"
)

type titleRepositoryImpl struct {
	db *database.DB
}

func NewTitleRepository(db *database.DB) employee.TitleRepository {
	return &titleRepositoryImpl{db: db}
}

func (r *titleRepositoryImpl) Create(ctx context.Context, title employee.Title) (employee.Title, error) {
	q := GetQuerier(ctx, r.db)

	if title.ID == "" {
		title.ID = uuid.New().String()
	}

	query := `
		INSERT INTO titles (id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, title.ID, title.Name).Scan(&title.CreatedAt, &title.UpdatedAt)
	if err != nil {
		return employee.Title{}, fmt.Errorf("failed to create title: %w", err)
	}

	return title, nil
}

func (r *titleRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Title, error) {
	q := GetQuerier(ctx, r.db)

	var t employee.Title
	err := q.QueryRow(ctx,
		"SELECT id, name, created_at, updated_at FROM titles WHERE id = $1", id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Title{}, employee.ErrTitleNotFound
		}
		return employee.Title{}, err
	}
	return t, nil
}

func (r *titleRepositoryImpl) List(ctx context.Context) ([]employee.Title, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.name, t.created_at, t.updated_at, COUNT(e.id) AS employee_count
		FROM titles t
		LEFT JOIN employees e ON e.title_id = t.id
		GROUP BY t.id, t.name, t.created_at, t.updated_at
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []employee.Title
	for rows.Next() {
		var t employee.Title
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.EmployeeCount); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return titles, nil
}

func (r *titleRepositoryImpl) Update(ctx context.Context, id string, name string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		"UPDATE titles SET name = $2, updated_at = NOW() WHERE id = $1", id, name,
	)
	if err != nil {
		return fmt.Errorf("failed to update title with id %s: %w", id, err)
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrTitleNotFound
	}
	return nil
}

func (r *titleRepositoryImpl) IsInUse(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var inUse bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM employees WHERE title_id = $1)", id,
	).Scan(&inUse)
	return inUse, err
}

func (r *titleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, "DELETE FROM titles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrTitleNotFound
	}
	return nil
}
