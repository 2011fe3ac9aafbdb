package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User is the contractor account. Company fields feed the offer header.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	CompanyName string    `json:"company_name"`
	VATID       string    `json:"vat_id"`
	LogoPath    string    `json:"logo_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertUser is what the identity middleware knows about a caller.
type UpsertUser struct {
	ID    string
	Email string
}

// ProfileUpdate changes company details. Nil fields are left untouched.
type ProfileUpdate struct {
	Email       *string `json:"email"`
	CompanyName *string `json:"company_name"`
	VATID       *string `json:"vat_id"`
	LogoPath    *string `json:"logo_path"`
}
