package http

import (
	"context"

	"github.com/marinv/contractor-pm/internal/offers/costcal"
	"github.com/marinv/contractor-pm/internal/offers/domain"
	"github.com/marinv/contractor-pm/internal/offers/report"
	pdomain "github.com/marinv/contractor-pm/internal/projects/domain"
)

// OfferService is the part of service.OfferService the handlers use.
type OfferService interface {
	Costs(ctx context.Context, userID, publicID string) (*pdomain.Project, costcal.Breakdown, error)
	Report(ctx context.Context, userID, publicID, format string) (*report.Document, error)
	SendOffer(ctx context.Context, userID, publicID string, req domain.SendRequest) (*domain.OfferRecord, error)
	History(ctx context.Context, userID, publicID string) ([]domain.OfferRecord, error)
}

// Handler bundles the dependencies for offer endpoints.
type Handler struct {
	svc OfferService
}

func New(svc OfferService) *Handler {
	return &Handler{svc: svc}
}
