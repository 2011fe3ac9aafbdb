package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

// WorkerTypeRepository stores the user's priced labor categories.
type WorkerTypeRepository struct {
	db *sql.DB
}

func NewWorkerTypeRepository(db *sql.DB) *WorkerTypeRepository {
	return &WorkerTypeRepository{db: db}
}

func scanWorkerType(row rowScanner) (*domain.WorkerType, error) {
	var wt domain.WorkerType
	if err := row.Scan(&wt.ID, &wt.UserID, &wt.Name, &wt.HourlyRate, &wt.CreatedAt); err != nil {
		return nil, err
	}
	return &wt, nil
}

func (r *WorkerTypeRepository) Create(ctx context.Context, userID string, in domain.WorkerTypeInput) (*domain.WorkerType, error) {
	const q = `
INSERT INTO worker_types (user_id, name, hourly_rate)
VALUES ($1, $2, $3)
RETURNING id, user_id, name, hourly_rate, created_at;
`
	wt, err := scanWorkerType(r.db.QueryRowContext(ctx, q, userID, strings.TrimSpace(deref(in.Name)), deref(in.HourlyRate)))
	if err != nil {
		return nil, fmt.Errorf("insert worker type: %w", err)
	}
	return wt, nil
}

func (r *WorkerTypeRepository) Get(ctx context.Context, userID string, id int64) (*domain.WorkerType, error) {
	const q = `
SELECT id, user_id, name, hourly_rate, created_at
FROM worker_types
WHERE user_id = $1 AND id = $2;
`
	wt, err := scanWorkerType(r.db.QueryRowContext(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWorkerTypeNotFound
		}
		return nil, err
	}
	return wt, nil
}

func (r *WorkerTypeRepository) List(ctx context.Context, userID string) ([]domain.WorkerType, error) {
	const q = `
SELECT id, user_id, name, hourly_rate, created_at
FROM worker_types
WHERE user_id = $1
ORDER BY name, id;
`
	return r.query(ctx, q, userID)
}

// LookupForProject resolves every worker type referenced by the project's
// time entries. References that no longer resolve are simply absent.
func (r *WorkerTypeRepository) LookupForProject(ctx context.Context, projectID int64) (map[int64]domain.WorkerType, error) {
	const q = `
SELECT wt.id, wt.user_id, wt.name, wt.hourly_rate, wt.created_at
FROM worker_types wt
WHERE wt.id IN (SELECT DISTINCT te.worker_type_id FROM time_entries te WHERE te.project_id = $1);
`
	items, err := r.query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]domain.WorkerType, len(items))
	for _, wt := range items {
		out[wt.ID] = wt
	}
	return out, nil
}

func (r *WorkerTypeRepository) Update(ctx context.Context, userID string, id int64, in domain.WorkerTypeInput) (*domain.WorkerType, error) {
	const q = `
UPDATE worker_types SET
  name        = COALESCE($3, name),
  hourly_rate = COALESCE($4, hourly_rate)
WHERE user_id = $1 AND id = $2
RETURNING id, user_id, name, hourly_rate, created_at;
`
	wt, err := scanWorkerType(r.db.QueryRowContext(ctx, q, userID, id, in.Name, in.HourlyRate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWorkerTypeNotFound
		}
		return nil, err
	}
	return wt, nil
}

// Delete removes the worker type. Time entries that referenced it are kept
// and become orphans, excluded from cost aggregation.
func (r *WorkerTypeRepository) Delete(ctx context.Context, userID string, id int64) error {
	const q = `DELETE FROM worker_types WHERE user_id = $1 AND id = $2;`
	return execOne(ctx, r.db, domain.ErrWorkerTypeNotFound, q, userID, id)
}

func (r *WorkerTypeRepository) query(ctx context.Context, q string, args ...any) ([]domain.WorkerType, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WorkerType, 0, 8)
	for rows.Next() {
		wt, err := scanWorkerType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *wt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
