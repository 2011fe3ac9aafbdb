package domain

import "time"

// Project statuses.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Project is a job the contractor prices and offers to a customer.
// It owns its time entries and materials; deleting it removes them.
type Project struct {
	ID              int64     `json:"-"`
	PublicID        string    `json:"public_id"`
	UserID          string    `json:"-"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerAddress string    `json:"customer_address"`
	Status          string    `json:"status"`
	OfferTerms      string    `json:"offer_terms"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProjectInput carries the writable fields of a project.
// Nil pointers are left untouched on update.
type ProjectInput struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	CustomerName    *string `json:"customer_name"`
	CustomerEmail   *string `json:"customer_email"`
	CustomerAddress *string `json:"customer_address"`
	Status          *string `json:"status"`
	OfferTerms      *string `json:"offer_terms"`
}

// WorkerType is a priced labor category owned by a user, e.g. "Electrician".
type WorkerType struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"-"`
	Name       string    `json:"name"`
	HourlyRate float64   `json:"hourly_rate"`
	CreatedAt  time.Time `json:"created_at"`
}

type WorkerTypeInput struct {
	Name       *string  `json:"name"`
	HourlyRate *float64 `json:"hourly_rate"`
}

// TimeEntry records hours worked on a project by one worker type.
type TimeEntry struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"-"`
	WorkerTypeID int64     `json:"worker_type_id"`
	Hours        float64   `json:"hours"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

type TimeEntryInput struct {
	WorkerTypeID *int64   `json:"worker_type_id"`
	Hours        *float64 `json:"hours"`
	Date         *string  `json:"date"` // YYYY-MM-DD
	Description  *string  `json:"description"`
}

// Material is a single purchased item line on a project.
type Material struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"-"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	UnitPrice float64   `json:"unit_price"`
	Supplier  string    `json:"supplier"`
	CreatedAt time.Time `json:"created_at"`
}

type MaterialInput struct {
	Name      *string  `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Unit      *string  `json:"unit"`
	UnitPrice *float64 `json:"unit_price"`
	Supplier  *string  `json:"supplier"`
}
