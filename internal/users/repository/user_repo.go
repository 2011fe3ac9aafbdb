package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marinv/contractor-pm/internal/users/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureUser creates the user on first sight and refreshes the email when one is given.
func (r *UserRepository) EnsureUser(ctx context.Context, u domain.UpsertUser) (string, error) {
	if u.ID == "" {
		return "", fmt.Errorf("user id required")
	}

	const q = `
insert into users (id, email, updated_at)
values ($1, coalesce(nullif($2, ''), ''), now())
on conflict (id) do update
set
  email = coalesce(nullif(excluded.email, ''), users.email),
  updated_at = now()
returning id;
`
	var id string
	if err := r.db.QueryRowContext(ctx, q, u.ID, u.Email).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// Get retrieves a user by id.
func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id, email, company_name, vat_id, logo_path, created_at, updated_at
FROM users
WHERE id = $1
`
	var u domain.User
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&u.ID, &u.Email, &u.CompanyName, &u.VATID, &u.LogoPath, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile applies the non-nil fields of upd.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	const q = `
UPDATE users SET
  email        = COALESCE($2, email),
  company_name = COALESCE($3, company_name),
  vat_id       = COALESCE($4, vat_id),
  logo_path    = COALESCE($5, logo_path),
  updated_at   = now()
WHERE id = $1
RETURNING id, email, company_name, vat_id, logo_path, created_at, updated_at
`
	var u domain.User
	err := r.db.QueryRowContext(ctx, q, id, upd.Email, upd.CompanyName, upd.VATID, upd.LogoPath).
		Scan(&u.ID, &u.Email, &u.CompanyName, &u.VATID, &u.LogoPath, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
