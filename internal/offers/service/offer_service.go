package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/marinv/contractor-pm/internal/offers/costcal"
	"github.com/marinv/contractor-pm/internal/offers/dispatch"
	"github.com/marinv/contractor-pm/internal/offers/domain"
	"github.com/marinv/contractor-pm/internal/offers/report"
	pdomain "github.com/marinv/contractor-pm/internal/projects/domain"
	"github.com/marinv/contractor-pm/internal/storage/logos"
	udomain "github.com/marinv/contractor-pm/internal/users/domain"
	"github.com/marinv/contractor-pm/pkg/logging"
)

type ProjectReader interface {
	Get(ctx context.Context, userID, publicID string) (*pdomain.Project, error)
}

type TimeEntryLister interface {
	ListByProject(ctx context.Context, projectID int64) ([]pdomain.TimeEntry, error)
}

type MaterialLister interface {
	ListByProject(ctx context.Context, projectID int64) ([]pdomain.Material, error)
}

type WorkerTypeResolver interface {
	LookupForProject(ctx context.Context, projectID int64) (map[int64]pdomain.WorkerType, error)
}

type ProfileReader interface {
	Get(ctx context.Context, id string) (*udomain.User, error)
}

type LogoReader interface {
	Read(filename string) ([]byte, error)
}

type Mailer interface {
	Send(ctx context.Context, o dispatch.Offer) error
}

// OfferLog is optional; a nil log disables history.
type OfferLog interface {
	Record(ctx context.Context, rec *domain.OfferRecord) error
	List(ctx context.Context, projectPublicID string) ([]domain.OfferRecord, error)
}

type Deps struct {
	Projects    ProjectReader
	TimeEntries TimeEntryLister
	Materials   MaterialLister
	WorkerTypes WorkerTypeResolver
	Profiles    ProfileReader
	Logos       LogoReader
	Renderer    *report.Renderer
	Mailer      Mailer
	OfferLog    OfferLog
	// DefaultCompany signs emails when the profile has no company name.
	DefaultCompany string
	Now            func() time.Time
}

// OfferService prices projects, renders offers and emails them.
type OfferService struct {
	d Deps
}

func NewOfferService(d Deps) *OfferService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.DefaultCompany == "" {
		d.DefaultCompany = "Contractor Services"
	}
	return &OfferService{d: d}
}

// Costs loads the project and its rows and computes a fresh breakdown.
func (s *OfferService) Costs(ctx context.Context, userID, publicID string) (*pdomain.Project, costcal.Breakdown, error) {
	p, err := s.d.Projects.Get(ctx, userID, publicID)
	if err != nil {
		return nil, costcal.Breakdown{}, err
	}

	entries, err := s.d.TimeEntries.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, costcal.Breakdown{}, fmt.Errorf("list time entries: %w", err)
	}
	lookup, err := s.d.WorkerTypes.LookupForProject(ctx, p.ID)
	if err != nil {
		return nil, costcal.Breakdown{}, fmt.Errorf("resolve worker types: %w", err)
	}
	materials, err := s.d.Materials.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, costcal.Breakdown{}, fmt.Errorf("list materials: %w", err)
	}

	b := costcal.Compute(entries, lookup, materials)
	if n := len(b.OrphanedEntryIDs); n > 0 {
		orphanedEntriesSeen.Add(float64(n))
		logging.FromContext(ctx).Warn("time entries reference missing worker types",
			slog.String("project", p.PublicID),
			slog.Int("count", n),
			slog.Any("entry_ids", b.OrphanedEntryIDs),
		)
	}
	return p, b, nil
}

// Report renders the project's offer in the given format.
func (s *OfferService) Report(ctx context.Context, userID, publicID, format string) (*report.Document, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	p, b, err := s.Costs(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	_, company, err := s.company(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.d.Renderer.Generate(ctx, report.Input{Project: *p, Breakdown: b, Company: company}, f)
	if err != nil {
		return nil, err
	}
	reportsGenerated.WithLabelValues(f).Inc()
	return doc, nil
}

// SendOffer renders the PDF and emails it to req.ToEmail with the user in Cc.
func (s *OfferService) SendOffer(ctx context.Context, userID, publicID string, req domain.SendRequest) (*domain.OfferRecord, error) {
	to := strings.TrimSpace(req.ToEmail)
	if to == "" {
		return nil, domain.ErrRecipientRequired
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRecipient, to)
	}

	p, b, err := s.Costs(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	user, company, err := s.company(ctx, userID)
	if err != nil {
		return nil, err
	}
	companyName := company.Name
	if companyName == "" {
		companyName = s.d.DefaultCompany
	}

	doc, err := s.d.Renderer.Generate(ctx, report.Input{Project: *p, Breakdown: b, Company: company}, report.FormatPDF)
	if err != nil {
		return nil, err
	}
	reportsGenerated.WithLabelValues(report.FormatPDF).Inc()

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = fmt.Sprintf("Commercial Offer - %s from %s", p.Name, companyName)
	}
	body, err := buildEmailBody(p.CustomerName, p.Name, companyName, req.Message)
	if err != nil {
		return nil, fmt.Errorf("build email body: %w", err)
	}

	cc := strings.TrimSpace(user.Email)
	if strings.EqualFold(cc, to) {
		cc = ""
	}

	err = s.d.Mailer.Send(ctx, dispatch.Offer{
		To:       to,
		Cc:       cc,
		Subject:  subject,
		HTMLBody: body,
		Filename: doc.Filename,
		PDF:      doc.Body,
	})
	switch {
	case errors.Is(err, dispatch.ErrNotConfigured):
		offersSent.WithLabelValues("not_configured").Inc()
		return nil, err
	case err != nil:
		offersSent.WithLabelValues("failed").Inc()
		return nil, err
	}
	offersSent.WithLabelValues("sent").Inc()

	rec := &domain.OfferRecord{
		ProjectPublicID: p.PublicID,
		UserID:          userID,
		To:              to,
		Cc:              cc,
		Subject:         subject,
		Filename:        doc.Filename,
		GrandTotal:      b.GrandTotal,
		SentAt:          s.d.Now().UTC(),
	}
	if s.d.OfferLog != nil {
		if err := s.d.OfferLog.Record(ctx, rec); err != nil {
			// The email is already out; history is best effort.
			logging.FromContext(ctx).Warn("failed to record sent offer", slog.String("project", p.PublicID), slog.Any("error", err))
		}
	}
	return rec, nil
}

// History lists offers sent for one of the user's projects.
func (s *OfferService) History(ctx context.Context, userID, publicID string) ([]domain.OfferRecord, error) {
	if _, err := s.d.Projects.Get(ctx, userID, publicID); err != nil {
		return nil, err
	}
	if s.d.OfferLog == nil {
		return []domain.OfferRecord{}, nil
	}
	return s.d.OfferLog.List(ctx, publicID)
}

// company builds the offer header from the user's profile. Logo problems
// never fail the request; the logo is just left out.
func (s *OfferService) company(ctx context.Context, userID string) (*udomain.User, report.Company, error) {
	u, err := s.d.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, report.Company{}, fmt.Errorf("load profile: %w", err)
	}

	c := report.Company{Name: u.CompanyName, TaxID: u.VATID, LogoFilename: u.LogoPath}
	if u.LogoPath == "" || s.d.Logos == nil {
		return u, c, nil
	}

	data, err := s.d.Logos.Read(u.LogoPath)
	switch {
	case errors.Is(err, logos.ErrLogoNotFound):
		logging.FromContext(ctx).Debug("logo configured but missing", slog.String("logo", u.LogoPath))
	case err != nil:
		logging.FromContext(ctx).Warn("failed to read logo", slog.String("logo", u.LogoPath), slog.Any("error", err))
	default:
		c.Logo = data
	}
	return u, c, nil
}
