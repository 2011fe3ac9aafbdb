package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinv/contractor-pm/internal/offers/dispatch"
	"github.com/marinv/contractor-pm/internal/offers/domain"
	"github.com/marinv/contractor-pm/internal/offers/report"
	pdomain "github.com/marinv/contractor-pm/internal/projects/domain"
	"github.com/marinv/contractor-pm/internal/storage/logos"
	udomain "github.com/marinv/contractor-pm/internal/users/domain"
)

type fakeProjects struct {
	p *pdomain.Project
}

func (f *fakeProjects) Get(_ context.Context, userID, publicID string) (*pdomain.Project, error) {
	if f.p == nil || f.p.UserID != userID || f.p.PublicID != publicID {
		return nil, pdomain.ErrProjectNotFound
	}
	cp := *f.p
	return &cp, nil
}

type fakeEntries struct {
	rows []pdomain.TimeEntry
	err  error
}

func (f *fakeEntries) ListByProject(context.Context, int64) ([]pdomain.TimeEntry, error) {
	return f.rows, f.err
}

type fakeMaterials struct {
	rows []pdomain.Material
}

func (f *fakeMaterials) ListByProject(context.Context, int64) ([]pdomain.Material, error) {
	return f.rows, nil
}

type fakeWorkerTypes map[int64]pdomain.WorkerType

func (f fakeWorkerTypes) LookupForProject(context.Context, int64) (map[int64]pdomain.WorkerType, error) {
	return f, nil
}

type fakeProfiles struct {
	u *udomain.User
}

func (f *fakeProfiles) Get(_ context.Context, id string) (*udomain.User, error) {
	if f.u == nil || f.u.ID != id {
		return nil, udomain.ErrUserNotFound
	}
	return f.u, nil
}

type fakeLogos struct {
	data []byte
	err  error
}

func (f *fakeLogos) Read(string) ([]byte, error) { return f.data, f.err }

type fakeMailer struct {
	sent []dispatch.Offer
	err  error
}

func (f *fakeMailer) Send(_ context.Context, o dispatch.Offer) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, o)
	return nil
}

type fakeLog struct {
	records []domain.OfferRecord
	err     error
}

func (f *fakeLog) Record(_ context.Context, rec *domain.OfferRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeLog) List(_ context.Context, id string) ([]domain.OfferRecord, error) {
	out := []domain.OfferRecord{}
	for _, r := range f.records {
		if r.ProjectPublicID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

type fixture struct {
	svc     *OfferService
	mailer  *fakeMailer
	log     *fakeLog
	entries *fakeEntries
	logos   *fakeLogos
	profile *udomain.User
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		mailer: &fakeMailer{},
		log:    &fakeLog{},
		entries: &fakeEntries{rows: []pdomain.TimeEntry{
			{ID: 1, WorkerTypeID: 10, Hours: 8},
			{ID: 2, WorkerTypeID: 10, Hours: 4},
			{ID: 3, WorkerTypeID: 99, Hours: 5},
		}},
		logos:   &fakeLogos{err: logos.ErrLogoNotFound},
		profile: &udomain.User{ID: "u1", Email: "owner@builder.example", CompanyName: "Builder Ltd", VATID: "HR123"},
	}
	f.svc = NewOfferService(Deps{
		Projects: &fakeProjects{p: &pdomain.Project{
			ID: 7, PublicID: "prj-00001-0001", UserID: "u1",
			Name: "Kitchen Remodel", CustomerName: "Ana <Admin>",
		}},
		TimeEntries: f.entries,
		Materials: &fakeMaterials{rows: []pdomain.Material{
			{ID: 1, Name: "Tiles", Quantity: 20, Unit: "m2", UnitPrice: 15},
		}},
		WorkerTypes: fakeWorkerTypes{10: {ID: 10, Name: "Electrician", HourlyRate: 40}},
		Profiles:    &fakeProfiles{u: f.profile},
		Logos:       f.logos,
		Renderer:    report.NewRenderer(report.Options{Now: func() time.Time { return fixedNow }}),
		Mailer:      f.mailer,
		OfferLog:    f.log,
		Now:         func() time.Time { return fixedNow },
	})
	return f
}

func TestCosts_SkipsOrphanedEntries(t *testing.T) {
	f := newFixture()

	p, b, err := f.svc.Costs(context.Background(), "u1", "prj-00001-0001")
	require.NoError(t, err)

	assert.Equal(t, "Kitchen Remodel", p.Name)
	assert.InDelta(t, 480, b.TotalLabor, 1e-9)
	assert.InDelta(t, 300, b.TotalMaterials, 1e-9)
	assert.InDelta(t, 780, b.GrandTotal, 1e-9)
	assert.Equal(t, []int64{3}, b.OrphanedEntryIDs)
}

func TestCosts_Errors(t *testing.T) {
	f := newFixture()

	_, _, err := f.svc.Costs(context.Background(), "someone-else", "prj-00001-0001")
	assert.ErrorIs(t, err, pdomain.ErrProjectNotFound)

	f.entries.err = errors.New("db down")
	_, _, err = f.svc.Costs(context.Background(), "u1", "prj-00001-0001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list time entries")
}

func TestReport(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc, err := f.svc.Report(ctx, "u1", "prj-00001-0001", "HTML")
	require.NoError(t, err)
	assert.Equal(t, report.FormatHTML, doc.Format)
	assert.Contains(t, string(doc.Body), "Builder Ltd")
	assert.Contains(t, string(doc.Body), "Electrician")

	doc, err = f.svc.Report(ctx, "u1", "prj-00001-0001", "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))
	assert.Equal(t, "offer_Kitchen_Remodel.pdf", doc.Filename)
}

func TestReport_UnsupportedFormatBeforeLoading(t *testing.T) {
	f := newFixture()

	// Unknown user would fail on load; the format check must come first.
	_, err := f.svc.Report(context.Background(), "nobody", "missing", "docx")
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestReport_LogoReadFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.profile.LogoPath = "logo.png"
	f.logos.err = errors.New("permission denied")

	doc, err := f.svc.Report(context.Background(), "u1", "prj-00001-0001", "html")
	require.NoError(t, err)
	assert.NotContains(t, string(doc.Body), "data:image")
}

func TestSendOffer_Defaults(t *testing.T) {
	f := newFixture()

	rec, err := f.svc.SendOffer(context.Background(), "u1", "prj-00001-0001", domain.SendRequest{ToEmail: " client@example.com "})
	require.NoError(t, err)

	require.Len(t, f.mailer.sent, 1)
	sent := f.mailer.sent[0]
	assert.Equal(t, "client@example.com", sent.To)
	assert.Equal(t, "owner@builder.example", sent.Cc)
	assert.Equal(t, "Commercial Offer - Kitchen Remodel from Builder Ltd", sent.Subject)
	assert.Contains(t, sent.HTMLBody, "Dear Ana &lt;Admin&gt;,")
	assert.Contains(t, sent.HTMLBody, "<strong>Kitchen Remodel</strong>")
	assert.Contains(t, sent.HTMLBody, "Best regards,<br/>Builder Ltd")
	assert.Equal(t, "offer_Kitchen_Remodel.pdf", sent.Filename)
	assert.True(t, bytes.HasPrefix(sent.PDF, []byte("%PDF-")))

	assert.InDelta(t, 780, rec.GrandTotal, 1e-9)
	assert.Equal(t, fixedNow, rec.SentAt)
	require.Len(t, f.log.records, 1)
	assert.Equal(t, "prj-00001-0001", f.log.records[0].ProjectPublicID)
}

func TestSendOffer_CustomMessage(t *testing.T) {
	f := newFixture()
	f.profile.CompanyName = ""

	_, err := f.svc.SendOffer(context.Background(), "u1", "prj-00001-0001", domain.SendRequest{
		ToEmail: "client@example.com",
		Subject: "Your quote",
		Message: "Line one\n<b>Line two</b>",
	})
	require.NoError(t, err)

	sent := f.mailer.sent[0]
	assert.Equal(t, "Your quote", sent.Subject)
	assert.Contains(t, sent.HTMLBody, "Line one<br/>&lt;b&gt;Line two&lt;/b&gt;")
	assert.NotContains(t, sent.HTMLBody, "Please find attached")
	assert.Contains(t, sent.HTMLBody, "Contractor Services")
}

func TestSendOffer_SkipsCcWhenSameAsRecipient(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SendOffer(context.Background(), "u1", "prj-00001-0001", domain.SendRequest{ToEmail: "Owner@Builder.example"})
	require.NoError(t, err)
	assert.Empty(t, f.mailer.sent[0].Cc)
}

func TestSendOffer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.SendRequest
		mailErr error
		wantErr error
	}{
		{name: "missing recipient", req: domain.SendRequest{ToEmail: "  "}, wantErr: domain.ErrRecipientRequired},
		{name: "invalid recipient", req: domain.SendRequest{ToEmail: "not-an-email"}, wantErr: domain.ErrInvalidRecipient},
		{name: "smtp not configured", req: domain.SendRequest{ToEmail: "a@b.example"}, mailErr: dispatch.ErrNotConfigured, wantErr: dispatch.ErrNotConfigured},
		{
			name:    "delivery failure",
			req:     domain.SendRequest{ToEmail: "a@b.example"},
			mailErr: &dispatch.DeliveryError{Op: "send", Err: errors.New("535 auth failed")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.mailer.err = tt.mailErr

			_, err := f.svc.SendOffer(context.Background(), "u1", "prj-00001-0001", tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				var de *dispatch.DeliveryError
				assert.ErrorAs(t, err, &de)
			}
			assert.Empty(t, f.log.records)
		})
	}
}

func TestSendOffer_LogFailureStillSucceeds(t *testing.T) {
	f := newFixture()
	f.log.err = errors.New("redis unavailable")

	rec, err := f.svc.SendOffer(context.Background(), "u1", "prj-00001-0001", domain.SendRequest{ToEmail: "client@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Len(t, f.mailer.sent, 1)
}

func TestHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SendOffer(ctx, "u1", "prj-00001-0001", domain.SendRequest{ToEmail: "client@example.com"})
	require.NoError(t, err)

	got, err := f.svc.History(ctx, "u1", "prj-00001-0001")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = f.svc.History(ctx, "u2", "prj-00001-0001")
	assert.ErrorIs(t, err, pdomain.ErrProjectNotFound)

	f.svc.d.OfferLog = nil
	got, err = f.svc.History(ctx, "u1", "prj-00001-0001")
	require.NoError(t, err)
	assert.Empty(t, got)
}
