package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

const timeEntryColumns = `te.id, te.project_id, te.worker_type_id, te.hours, te.work_date, te.description, te.created_at`

// TimeEntryRepository stores hours worked on projects.
type TimeEntryRepository struct {
	db *sql.DB
}

func NewTimeEntryRepository(db *sql.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func scanTimeEntry(row rowScanner) (*domain.TimeEntry, error) {
	var te domain.TimeEntry
	if err := row.Scan(&te.ID, &te.ProjectID, &te.WorkerTypeID, &te.Hours, &te.Date, &te.Description, &te.CreatedAt); err != nil {
		return nil, err
	}
	return &te, nil
}

// Create inserts an entry. A nil date means today.
func (r *TimeEntryRepository) Create(ctx context.Context, projectID int64, in domain.TimeEntryInput, date *time.Time) (*domain.TimeEntry, error) {
	const q = `
INSERT INTO time_entries AS te (project_id, worker_type_id, hours, work_date, description)
VALUES ($1, $2, $3, COALESCE($4::date, CURRENT_DATE), $5)
RETURNING ` + timeEntryColumns + `;`

	te, err := scanTimeEntry(r.db.QueryRowContext(ctx, q, projectID, deref(in.WorkerTypeID), deref(in.Hours), date, deref(in.Description)))
	if err != nil {
		return nil, fmt.Errorf("insert time entry: %w", err)
	}
	return te, nil
}

// Get returns an entry belonging to one of the user's projects.
func (r *TimeEntryRepository) Get(ctx context.Context, userID string, id int64) (*domain.TimeEntry, error) {
	const q = `
SELECT ` + timeEntryColumns + `
FROM time_entries te
JOIN projects p ON p.id = te.project_id
WHERE p.user_id = $1 AND te.id = $2;
`
	te, err := scanTimeEntry(r.db.QueryRowContext(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTimeEntryNotFound
		}
		return nil, err
	}
	return te, nil
}

// ListByProject returns entries in a stable order: by date, then insertion.
func (r *TimeEntryRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.TimeEntry, error) {
	const q = `
SELECT ` + timeEntryColumns + `
FROM time_entries te
WHERE te.project_id = $1
ORDER BY te.work_date, te.id;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TimeEntry, 0, 32)
	for rows.Next() {
		te, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *te)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TimeEntryRepository) Update(ctx context.Context, userID string, id int64, in domain.TimeEntryInput, date *time.Time) (*domain.TimeEntry, error) {
	const q = `
UPDATE time_entries AS te SET
  worker_type_id = COALESCE($3, te.worker_type_id),
  hours          = COALESCE($4, te.hours),
  work_date      = COALESCE($5::date, te.work_date),
  description    = COALESCE($6, te.description)
FROM projects p
WHERE p.id = te.project_id AND p.user_id = $1 AND te.id = $2
RETURNING ` + timeEntryColumns + `;`

	te, err := scanTimeEntry(r.db.QueryRowContext(ctx, q, userID, id, in.WorkerTypeID, in.Hours, date, in.Description))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTimeEntryNotFound
		}
		return nil, err
	}
	return te, nil
}

func (r *TimeEntryRepository) Delete(ctx context.Context, userID string, id int64) error {
	const q = `
DELETE FROM time_entries te
USING projects p
WHERE p.id = te.project_id AND p.user_id = $1 AND te.id = $2;
`
	return execOne(ctx, r.db, domain.ErrTimeEntryNotFound, q, userID, id)
}
