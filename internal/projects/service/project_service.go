package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

type ProjectStore interface {
	Create(ctx context.Context, userID string, in domain.ProjectInput) (*domain.Project, error)
	Get(ctx context.Context, userID, publicID string) (*domain.Project, error)
	List(ctx context.Context, userID, status string) ([]domain.Project, error)
	Update(ctx context.Context, userID, publicID string, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, userID, publicID string) error
}

type WorkerTypeStore interface {
	Create(ctx context.Context, userID string, in domain.WorkerTypeInput) (*domain.WorkerType, error)
	Get(ctx context.Context, userID string, id int64) (*domain.WorkerType, error)
	List(ctx context.Context, userID string) ([]domain.WorkerType, error)
	Update(ctx context.Context, userID string, id int64, in domain.WorkerTypeInput) (*domain.WorkerType, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type TimeEntryStore interface {
	Create(ctx context.Context, projectID int64, in domain.TimeEntryInput, date *time.Time) (*domain.TimeEntry, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.TimeEntry, error)
	Update(ctx context.Context, userID string, id int64, in domain.TimeEntryInput, date *time.Time) (*domain.TimeEntry, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type MaterialStore interface {
	Create(ctx context.Context, projectID int64, in domain.MaterialInput) (*domain.Material, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Material, error)
	Update(ctx context.Context, userID string, id int64, in domain.MaterialInput) (*domain.Material, error)
	Delete(ctx context.Context, userID string, id int64) error
}

// ProjectService handles project-related business logic: projects, their
// time entries and materials, and the user's worker types.
type ProjectService struct {
	projects    ProjectStore
	workerTypes WorkerTypeStore
	entries     TimeEntryStore
	materials   MaterialStore
}

func NewProjectService(projects ProjectStore, workerTypes WorkerTypeStore, entries TimeEntryStore, materials MaterialStore) *ProjectService {
	return &ProjectService{
		projects:    projects,
		workerTypes: workerTypes,
		entries:     entries,
		materials:   materials,
	}
}

func (s *ProjectService) Create(ctx context.Context, userID string, in domain.ProjectInput) (*domain.Project, error) {
	if err := domain.ValidateProject(in, true); err != nil {
		return nil, err
	}
	trimStrings(in.Name, in.CustomerName, in.CustomerEmail)
	return s.projects.Create(ctx, userID, in)
}

func (s *ProjectService) Get(ctx context.Context, userID, publicID string) (*domain.Project, error) {
	return s.projects.Get(ctx, userID, publicID)
}

// List returns the user's projects, newest first. An empty status lists all.
func (s *ProjectService) List(ctx context.Context, userID, status string) ([]domain.Project, error) {
	status = strings.TrimSpace(status)
	if status != "" && !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.projects.List(ctx, userID, status)
}

func (s *ProjectService) Update(ctx context.Context, userID, publicID string, in domain.ProjectInput) (*domain.Project, error) {
	if err := domain.ValidateProject(in, false); err != nil {
		return nil, err
	}
	trimStrings(in.Name, in.CustomerName, in.CustomerEmail)
	return s.projects.Update(ctx, userID, publicID, in)
}

// Delete removes the project together with its time entries and materials.
func (s *ProjectService) Delete(ctx context.Context, userID, publicID string) error {
	return s.projects.Delete(ctx, userID, publicID)
}

func trimStrings(ps ...*string) {
	for _, p := range ps {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}
