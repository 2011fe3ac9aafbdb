package dispatch

import "errors"

// ErrNotConfigured means no SMTP host or user is set. Nothing was attempted.
var ErrNotConfigured = errors.New("email is not configured: set SMTP_HOST and SMTP_USER")

// DeliveryError wraps a failure that happened while building or submitting
// a message. Whether a retry makes sense is up to the caller.
type DeliveryError struct {
	Op  string
	Err error
}

func (e *DeliveryError) Error() string {
	return "deliver offer: " + e.Op + ": " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func deliveryErr(op string, err error) error {
	return &DeliveryError{Op: op, Err: err}
}
