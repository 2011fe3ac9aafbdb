package service

import (
	"context"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

func (s *ProjectService) CreateWorkerType(ctx context.Context, userID string, in domain.WorkerTypeInput) (*domain.WorkerType, error) {
	if err := domain.ValidateWorkerType(in, true); err != nil {
		return nil, err
	}
	trimStrings(in.Name)
	return s.workerTypes.Create(ctx, userID, in)
}

func (s *ProjectService) GetWorkerType(ctx context.Context, userID string, id int64) (*domain.WorkerType, error) {
	return s.workerTypes.Get(ctx, userID, id)
}

func (s *ProjectService) ListWorkerTypes(ctx context.Context, userID string) ([]domain.WorkerType, error) {
	return s.workerTypes.List(ctx, userID)
}

// UpdateWorkerType changes a rate. Costs are always recomputed, so existing
// entries are priced at the new rate from then on.
func (s *ProjectService) UpdateWorkerType(ctx context.Context, userID string, id int64, in domain.WorkerTypeInput) (*domain.WorkerType, error) {
	if err := domain.ValidateWorkerType(in, false); err != nil {
		return nil, err
	}
	trimStrings(in.Name)
	return s.workerTypes.Update(ctx, userID, id, in)
}

// DeleteWorkerType removes the type. Entries that used it stay in place and
// are left out of cost totals.
func (s *ProjectService) DeleteWorkerType(ctx context.Context, userID string, id int64) error {
	return s.workerTypes.Delete(ctx, userID, id)
}
