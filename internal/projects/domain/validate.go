package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for time entry dates.
const DateLayout = "2006-01-02"

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ValidateProject checks a project input. On create the name is mandatory.
func ValidateProject(in ProjectInput, create bool) error {
	if create && (in.Name == nil || strings.TrimSpace(*in.Name) == "") {
		return invalid("name is required")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("name must not be empty")
	}
	if in.Status != nil && !ValidStatus(*in.Status) {
		return invalid("status must be one of draft, active, completed")
	}
	return nil
}

func ValidateWorkerType(in WorkerTypeInput, create bool) error {
	if create && (in.Name == nil || in.HourlyRate == nil) {
		return invalid("name and hourly_rate are required")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("name must not be empty")
	}
	if in.HourlyRate != nil && *in.HourlyRate < 0 {
		return invalid("hourly_rate must not be negative")
	}
	return nil
}

// ValidateTimeEntry checks a time entry input and returns the parsed date, if any.
func ValidateTimeEntry(in TimeEntryInput, create bool) (*time.Time, error) {
	if create && (in.WorkerTypeID == nil || in.Hours == nil) {
		return nil, invalid("worker_type_id and hours are required")
	}
	if in.Hours != nil && *in.Hours < 0 {
		return nil, invalid("hours must not be negative")
	}
	if in.Date == nil || strings.TrimSpace(*in.Date) == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, strings.TrimSpace(*in.Date))
	if err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	return &d, nil
}

func ValidateMaterial(in MaterialInput, create bool) error {
	if create && (in.Name == nil || in.Quantity == nil || in.UnitPrice == nil) {
		return invalid("name, quantity and unit_price are required")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("name must not be empty")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return invalid("quantity must not be negative")
	}
	if in.UnitPrice != nil && *in.UnitPrice < 0 {
		return invalid("unit_price must not be negative")
	}
	return nil
}
