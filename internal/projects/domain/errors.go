package domain

import "errors"

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrWorkerTypeNotFound = errors.New("worker type not found")
	ErrTimeEntryNotFound  = errors.New("time entry not found")
	ErrMaterialNotFound   = errors.New("material not found")
	ErrInvalidWorkerType  = errors.New("invalid worker type")
	ErrInvalidInput       = errors.New("invalid input")
)
