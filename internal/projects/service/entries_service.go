package service

import (
	"context"
	"errors"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

func (s *ProjectService) ListTimeEntries(ctx context.Context, userID, publicID string) ([]domain.TimeEntry, error) {
	p, err := s.projects.Get(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	return s.entries.ListByProject(ctx, p.ID)
}

// AddTimeEntry records hours on the project. The worker type must belong to
// the same user.
func (s *ProjectService) AddTimeEntry(ctx context.Context, userID, publicID string, in domain.TimeEntryInput) (*domain.TimeEntry, error) {
	date, err := domain.ValidateTimeEntry(in, true)
	if err != nil {
		return nil, err
	}
	p, err := s.projects.Get(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWorkerType(ctx, userID, in.WorkerTypeID); err != nil {
		return nil, err
	}
	return s.entries.Create(ctx, p.ID, in, date)
}

func (s *ProjectService) UpdateTimeEntry(ctx context.Context, userID string, id int64, in domain.TimeEntryInput) (*domain.TimeEntry, error) {
	date, err := domain.ValidateTimeEntry(in, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkWorkerType(ctx, userID, in.WorkerTypeID); err != nil {
		return nil, err
	}
	return s.entries.Update(ctx, userID, id, in, date)
}

func (s *ProjectService) DeleteTimeEntry(ctx context.Context, userID string, id int64) error {
	return s.entries.Delete(ctx, userID, id)
}

func (s *ProjectService) ListMaterials(ctx context.Context, userID, publicID string) ([]domain.Material, error) {
	p, err := s.projects.Get(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	return s.materials.ListByProject(ctx, p.ID)
}

func (s *ProjectService) AddMaterial(ctx context.Context, userID, publicID string, in domain.MaterialInput) (*domain.Material, error) {
	if err := domain.ValidateMaterial(in, true); err != nil {
		return nil, err
	}
	p, err := s.projects.Get(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	trimStrings(in.Name, in.Unit, in.Supplier)
	return s.materials.Create(ctx, p.ID, in)
}

func (s *ProjectService) UpdateMaterial(ctx context.Context, userID string, id int64, in domain.MaterialInput) (*domain.Material, error) {
	if err := domain.ValidateMaterial(in, false); err != nil {
		return nil, err
	}
	trimStrings(in.Name, in.Unit, in.Supplier)
	return s.materials.Update(ctx, userID, id, in)
}

func (s *ProjectService) DeleteMaterial(ctx context.Context, userID string, id int64) error {
	return s.materials.Delete(ctx, userID, id)
}

func (s *ProjectService) checkWorkerType(ctx context.Context, userID string, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := s.workerTypes.Get(ctx, userID, *id)
	if errors.Is(err, domain.ErrWorkerTypeNotFound) {
		return domain.ErrInvalidWorkerType
	}
	return err
}
