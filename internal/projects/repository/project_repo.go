package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

const projectColumns = `id, public_id, user_id, name, description, customer_name, customer_email,
customer_address, status, offer_terms, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.PublicID, &p.UserID, &p.Name, &p.Description, &p.CustomerName,
		&p.CustomerEmail, &p.CustomerAddress, &p.Status, &p.OfferTerms, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project for the given user.
func (r *ProjectRepository) Create(ctx context.Context, userID string, in domain.ProjectInput) (*domain.Project, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required")
	}
	status := domain.StatusDraft
	if in.Status != nil {
		status = *in.Status
	}

	q := `
INSERT INTO projects (public_id, user_id, name, description, customer_name, customer_email,
                      customer_address, status, offer_terms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + projectColumns + `;`

	for i := 0; i < 5; i++ {
		publicID, err := domain.NewPublicID(domain.PublicIDPrefix)
		if err != nil {
			return nil, err
		}

		p, err := scanProject(r.db.QueryRowContext(ctx, q, publicID, userID,
			strings.TrimSpace(deref(in.Name)), deref(in.Description), deref(in.CustomerName),
			deref(in.CustomerEmail), deref(in.CustomerAddress), status, deref(in.OfferTerms)))
		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// Get returns one project owned by the user.
func (r *ProjectRepository) Get(ctx context.Context, userID, publicID string) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 AND public_id = $2;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, userID, publicID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns the user's projects, newest first. An empty status returns all of them.
func (r *ProjectRepository) List(ctx context.Context, userID, status string) ([]domain.Project, error) {
	q := `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil fields of in.
func (r *ProjectRepository) Update(ctx context.Context, userID, publicID string, in domain.ProjectInput) (*domain.Project, error) {
	q := `
UPDATE projects SET
  name             = COALESCE($3, name),
  description      = COALESCE($4, description),
  customer_name    = COALESCE($5, customer_name),
  customer_email   = COALESCE($6, customer_email),
  customer_address = COALESCE($7, customer_address),
  status           = COALESCE($8, status),
  offer_terms      = COALESCE($9, offer_terms),
  updated_at       = now()
WHERE user_id = $1 AND public_id = $2
RETURNING ` + projectColumns + `;`

	name := in.Name
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		name = &trimmed
	}

	p, err := scanProject(r.db.QueryRowContext(ctx, q, userID, publicID, name, in.Description,
		in.CustomerName, in.CustomerEmail, in.CustomerAddress, in.Status, in.OfferTerms))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the project; time entries and materials go with it.
func (r *ProjectRepository) Delete(ctx context.Context, userID, publicID string) error {
	const q = `DELETE FROM projects WHERE user_id = $1 AND public_id = $2;`
	return execOne(ctx, r.db, domain.ErrProjectNotFound, q, userID, publicID)
}

func execOne(ctx context.Context, db *sql.DB, notFound error, q string, args ...any) error {
	result, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
