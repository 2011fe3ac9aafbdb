package http

import (
	"context"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

// ProjectService is what the handlers need from service.ProjectService.
type ProjectService interface {
	Create(ctx context.Context, userID string, in domain.ProjectInput) (*domain.Project, error)
	Get(ctx context.Context, userID, publicID string) (*domain.Project, error)
	List(ctx context.Context, userID, status string) ([]domain.Project, error)
	Update(ctx context.Context, userID, publicID string, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, userID, publicID string) error

	ListTimeEntries(ctx context.Context, userID, publicID string) ([]domain.TimeEntry, error)
	AddTimeEntry(ctx context.Context, userID, publicID string, in domain.TimeEntryInput) (*domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, userID string, id int64, in domain.TimeEntryInput) (*domain.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, userID string, id int64) error

	ListMaterials(ctx context.Context, userID, publicID string) ([]domain.Material, error)
	AddMaterial(ctx context.Context, userID, publicID string, in domain.MaterialInput) (*domain.Material, error)
	UpdateMaterial(ctx context.Context, userID string, id int64, in domain.MaterialInput) (*domain.Material, error)
	DeleteMaterial(ctx context.Context, userID string, id int64) error

	CreateWorkerType(ctx context.Context, userID string, in domain.WorkerTypeInput) (*domain.WorkerType, error)
	GetWorkerType(ctx context.Context, userID string, id int64) (*domain.WorkerType, error)
	ListWorkerTypes(ctx context.Context, userID string) ([]domain.WorkerType, error)
	UpdateWorkerType(ctx context.Context, userID string, id int64, in domain.WorkerTypeInput) (*domain.WorkerType, error)
	DeleteWorkerType(ctx context.Context, userID string, id int64) error
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc ProjectService
}

func New(svc ProjectService) *Handler {
	return &Handler{svc: svc}
}
