package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

const materialColumns = `m.id, m.project_id, m.name, m.quantity, m.unit, m.unit_price, m.supplier, m.created_at`

// MaterialRepository stores material lines of projects.
type MaterialRepository struct {
	db *sql.DB
}

func NewMaterialRepository(db *sql.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func scanMaterial(row rowScanner) (*domain.Material, error) {
	var m domain.Material
	if err := row.Scan(&m.ID, &m.ProjectID, &m.Name, &m.Quantity, &m.Unit, &m.UnitPrice, &m.Supplier, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) Create(ctx context.Context, projectID int64, in domain.MaterialInput) (*domain.Material, error) {
	const q = `
INSERT INTO materials AS m (project_id, name, quantity, unit, unit_price, supplier)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + materialColumns + `;`

	m, err := scanMaterial(r.db.QueryRowContext(ctx, q, projectID, strings.TrimSpace(deref(in.Name)),
		deref(in.Quantity), deref(in.Unit), deref(in.UnitPrice), deref(in.Supplier)))
	if err != nil {
		return nil, fmt.Errorf("insert material: %w", err)
	}
	return m, nil
}

func (r *MaterialRepository) Get(ctx context.Context, userID string, id int64) (*domain.Material, error) {
	const q = `
SELECT ` + materialColumns + `
FROM materials m
JOIN projects p ON p.id = m.project_id
WHERE p.user_id = $1 AND m.id = $2;
`
	m, err := scanMaterial(r.db.QueryRowContext(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListByProject returns materials in insertion order.
func (r *MaterialRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Material, error) {
	const q = `
SELECT ` + materialColumns + `
FROM materials m
WHERE m.project_id = $1
ORDER BY m.id;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Material, 0, 32)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MaterialRepository) Update(ctx context.Context, userID string, id int64, in domain.MaterialInput) (*domain.Material, error) {
	const q = `
UPDATE materials AS m SET
  name       = COALESCE($3, m.name),
  quantity   = COALESCE($4, m.quantity),
  unit       = COALESCE($5, m.unit),
  unit_price = COALESCE($6, m.unit_price),
  supplier   = COALESCE($7, m.supplier)
FROM projects p
WHERE p.id = m.project_id AND p.user_id = $1 AND m.id = $2
RETURNING ` + materialColumns + `;`

	m, err := scanMaterial(r.db.QueryRowContext(ctx, q, userID, id, in.Name, in.Quantity, in.Unit, in.UnitPrice, in.Supplier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *MaterialRepository) Delete(ctx context.Context, userID string, id int64) error {
	const q = `
DELETE FROM materials m
USING projects p
WHERE p.id = m.project_id AND p.user_id = $1 AND m.id = $2;
`
	return execOne(ctx, r.db, domain.ErrMaterialNotFound, q, userID, id)
}
