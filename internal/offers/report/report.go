// Package report renders a priced project as a commercial offer document.
//
// Both formats are built from the same formatted view so that line counts
// and figures always agree between HTML and PDF.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/marinv/contractor-pm/internal/offers/costcal"
	"github.com/marinv/contractor-pm/internal/projects/domain"
	"github.com/marinv/contractor-pm/pkg/logging"
)

const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// Company is the identity printed in the offer header.
// Logo holds raw image bytes; LogoFilename is only used to infer its MIME type.
type Company struct {
	Name         string
	TaxID        string
	LogoFilename string
	Logo         []byte
}

// Input is everything a report is rendered from.
type Input struct {
	Project   domain.Project
	Breakdown costcal.Breakdown
	Company   Company
}

// Document is a rendered offer.
type Document struct {
	Format      string
	ContentType string
	Filename    string
	Body        []byte
}

type Options struct {
	CurrencySymbol string
	DefaultCompany string
	Now            func() time.Time
}

type Renderer struct {
	currency       string
	defaultCompany string
	now            func() time.Time
}

func NewRenderer(opt Options) *Renderer {
	r := &Renderer{
		currency:       opt.CurrencySymbol,
		defaultCompany: opt.DefaultCompany,
		now:            opt.Now,
	}
	if r.currency == "" {
		r.currency = "€"
	}
	if r.defaultCompany == "" {
		r.defaultCompany = "Contractor Services"
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// ParseFormat normalizes a format selector and rejects unknown ones.
func ParseFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f != FormatHTML && f != FormatPDF {
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnsupportedFormat, format, FormatHTML, FormatPDF)
	}
	return f, nil
}

// Generate renders in as "html" or "pdf".
func (r *Renderer) Generate(ctx context.Context, in Input, format string) (*Document, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	v := r.buildView(in)
	log := logging.FromContext(ctx)

	doc := &Document{Format: f, Filename: Filename(in.Project.Name, f)}
	switch f {
	case FormatHTML:
		body, err := renderHTML(v)
		if err != nil {
			return nil, err
		}
		doc.ContentType = "text/html; charset=utf-8"
		doc.Body = body
	case FormatPDF:
		body, err := renderPDF(v, log)
		if err != nil {
			return nil, err
		}
		doc.ContentType = "application/pdf"
		doc.Body = body
	}

	log.Debug("report rendered", slog.String("project", in.Project.PublicID), slog.String("format", f), slog.Int("bytes", len(doc.Body)))
	return doc, nil
}

// Filename returns "offer_<project name>.<ext>" with unsafe characters removed.
func Filename(projectName, ext string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(projectName) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.'):
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "project"
	}
	return "offer_" + name + "." + ext
}
