package domain

import (
	"errors"
	"time"
)

var (
	ErrRecipientRequired = errors.New("recipient email is required")
	ErrInvalidRecipient  = errors.New("recipient email is invalid")
)

// OfferRecord is one successfully dispatched offer.
type OfferRecord struct {
	ID              string    `json:"id"`
	ProjectPublicID string    `json:"project_id"`
	UserID          string    `json:"user_id"`
	To              string    `json:"to"`
	Cc              string    `json:"cc,omitempty"`
	Subject         string    `json:"subject"`
	Filename        string    `json:"filename"`
	GrandTotal      float64   `json:"grand_total"`
	SentAt          time.Time `json:"sent_at"`
}

// SendRequest is what a caller provides to email an offer.
// Empty Subject and Message fall back to generated defaults.
type SendRequest struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
