package report

import (
	"strconv"
	"strings"
	"time"
)

const (
	subtitle       = "Commercial Offer"
	notAvailable   = "N/A"
	validityNotice = "This offer is valid for 30 days from the date of issue."
)

type laborRow struct {
	WorkerType string
	Hours      string
	Rate       string
	Cost       string
}

type materialRow struct {
	Name      string
	Quantity  string
	Unit      string
	UnitPrice string
	Cost      string
}

// view is the fully formatted offer shared by both renderers.
type view struct {
	CompanyName string
	TaxID       string
	Logo        []byte
	LogoMIME    string

	ProjectName string
	Description string
	Date        string

	CustomerName    string
	CustomerEmail   string
	CustomerAddress string

	Labor          []laborRow
	Materials      []materialRow
	TotalLabor     string
	TotalMaterials string
	GrandTotal     string

	// Terms is nil when the project has no offer terms.
	Terms []string

	GeneratedAt time.Time
	GeneratedOn string
}

func (r *Renderer) buildView(in Input) view {
	now := r.now()
	p := in.Project
	b := in.Breakdown

	v := view{
		CompanyName:     orDefault(in.Company.Name, r.defaultCompany),
		TaxID:           strings.TrimSpace(in.Company.TaxID),
		ProjectName:     p.Name,
		Description:     orDefault(p.Description, notAvailable),
		Date:            now.Format("2006-01-02"),
		CustomerName:    orDefault(p.CustomerName, notAvailable),
		CustomerEmail:   orDefault(p.CustomerEmail, notAvailable),
		CustomerAddress: orDefault(p.CustomerAddress, notAvailable),
		Labor:           make([]laborRow, 0, len(b.LaborLines)),
		Materials:       make([]materialRow, 0, len(b.MaterialLines)),
		TotalLabor:      r.money(b.TotalLabor),
		TotalMaterials:  r.money(b.TotalMaterials),
		GrandTotal:      r.money(b.GrandTotal),
		Terms:           termLines(p.OfferTerms),
		GeneratedAt:     now,
		GeneratedOn:     "Generated on " + now.Format("2006-01-02 15:04"),
	}

	if len(in.Company.Logo) > 0 {
		v.Logo = in.Company.Logo
		v.LogoMIME = logoMIME(in.Company.LogoFilename)
	}

	for _, l := range b.LaborLines {
		v.Labor = append(v.Labor, laborRow{
			WorkerType: l.WorkerType,
			Hours:      oneDecimal(l.Hours),
			Rate:       r.money(l.Rate),
			Cost:       r.money(l.Cost),
		})
	}
	for _, m := range b.MaterialLines {
		v.Materials = append(v.Materials, materialRow{
			Name:      m.Name,
			Quantity:  oneDecimal(m.Quantity),
			Unit:      m.Unit,
			UnitPrice: r.money(m.UnitPrice),
			Cost:      r.money(m.Cost),
		})
	}
	return v
}

func (r *Renderer) money(v float64) string {
	return r.currency + strconv.FormatFloat(v, 'f', 2, 64)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// termLines returns nil only for empty terms. Whitespace-only terms still
// produce a section, made up of blank lines.
func termLines(terms string) []string {
	if terms == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(terms, "\r\n", "\n"), "\n")
}
