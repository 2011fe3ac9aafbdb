package report

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	pageMarginMM  = 20.0
	logoImageName = "company-logo"
	fontFamily    = "Go"
	cellLineMM    = 5.0
	cellPadMM     = 1.0
)

type rgb struct{ r, g, b int }

var (
	colorPrimary  = rgb{44, 82, 130}
	colorText     = rgb{51, 51, 51}
	colorMuted    = rgb{102, 102, 102}
	colorHeaderBg = rgb{245, 245, 245}
	colorTotalBg  = rgb{249, 249, 249}
	colorBorder   = rgb{204, 204, 204}
	colorWhite    = rgb{255, 255, 255}
)

func renderPDF(v view, log *slog.Logger) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(v.GeneratedAt)
	pdf.SetModificationDate(v.GeneratedAt)
	pdf.SetTitle(v.CompanyName+" - "+subtitle, true)
	pdf.SetAuthor(v.CompanyName, true)

	registerFonts(pdf)
	d := &pdfDrawer{pdf: pdf}
	logo := d.registerLogo(v, log)

	pdf.AddPage()
	for _, b := range layout(v, logo) {
		d.draw(b)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// registerFonts embeds the Go TrueType fonts so any UTF-8 text renders,
// including Croatian diacritics and the euro sign.
func registerFonts(pdf *fpdf.Fpdf) {
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", gobold.TTF)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", goitalic.TTF)
}

type pdfDrawer struct {
	pdf *fpdf.Fpdf
}

// registerLogo returns nil when there is no usable logo. A bad logo is
// logged and skipped so the rest of the offer still renders.
func (d *pdfDrawer) registerLogo(v view, log *slog.Logger) *pdfLogo {
	if len(v.Logo) == 0 {
		return nil
	}
	logo, err := preparePDFLogo(v.Logo)
	if err != nil {
		log.Debug("skipping logo", slog.Any("error", err))
		return nil
	}
	info := d.pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(logo.png))
	if d.pdf.Err() || info == nil {
		log.Debug("skipping logo", slog.Any("error", d.pdf.Error()))
		d.pdf.ClearError()
		return nil
	}
	return logo
}

func (d *pdfDrawer) tableLeft() float64 {
	pageW, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	return left + (pageW-left-right-tableWidth)/2
}

func (d *pdfDrawer) font(style string, size float64, c rgb) {
	d.pdf.SetFont(fontFamily, style, size)
	d.pdf.SetTextColor(c.r, c.g, c.b)
}

func (d *pdfDrawer) draw(b block) {
	pdf := d.pdf
	switch b.kind {
	case blockLogo:
		x := d.tableLeft() + (tableWidth-b.logo.width)/2
		y := pdf.GetY()
		pdf.ImageOptions(logoImageName, x, y, b.logo.width, b.logo.height, false,
			fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetY(y + b.logo.height + 4)

	case blockTitle:
		d.font("B", 20, colorPrimary)
		pdf.CellFormat(0, 10, b.text, "", 1, "C", false, 0, "")

	case blockSubtitle:
		d.font("", 14, colorMuted)
		pdf.CellFormat(0, 8, b.text, "", 1, "C", false, 0, "")

	case blockCaption:
		d.font("", 9, colorMuted)
		pdf.CellFormat(0, 5, b.text, "", 1, "C", false, 0, "")

	case blockHeading:
		pdf.Ln(6)
		d.font("B", 14, colorPrimary)
		pdf.SetX(d.tableLeft())
		pdf.CellFormat(tableWidth, 8, b.text, "", 1, "L", false, 0, "")
		pdf.Ln(1)

	case blockKeyValue:
		for _, row := range b.rows {
			pdf.SetX(d.tableLeft())
			d.font("B", 10, colorText)
			pdf.CellFormat(b.widths[0], 6, row[0], "", 0, "L", false, 0, "")
			d.font("", 10, colorText)
			pdf.MultiCell(b.widths[1], 6, row[1], "", "L", false)
		}

	case blockTable:
		d.drawTable(b)

	case blockBanner:
		pdf.Ln(8)
		pdf.SetFillColor(colorPrimary.r, colorPrimary.g, colorPrimary.b)
		d.font("B", 14, colorWhite)
		pdf.SetX(d.tableLeft())
		pdf.CellFormat(tableWidth, 12, b.text, "", 1, "C", true, 0, "")

	case blockParagraph:
		d.font("", 10, colorText)
		pdf.SetX(d.tableLeft())
		pdf.MultiCell(tableWidth, termsLeadMM, b.text, "", "L", false)

	case blockSpacer:
		pdf.Ln(b.height)

	case blockFooter:
		pdf.Ln(12)
		d.font("I", 9, colorMuted)
		for _, line := range b.lines {
			pdf.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
		}
	}
}

func (d *pdfDrawer) drawTable(b block) {
	pdf := d.pdf
	left := d.tableLeft()
	pdf.SetDrawColor(colorBorder.r, colorBorder.g, colorBorder.b)
	pdf.SetLineWidth(0.2)
	d.tableHeader(b, left)

	d.font("", 10, colorText)
	for _, row := range b.rows {
		cells := make([][]string, len(row))
		h := rowHeight
		for i, cell := range row {
			cells[i] = d.cellLines(cell, b.widths[i])
			h = max(h, float64(len(cells[i]))*cellLineMM+2*cellPadMM)
		}
		if d.overflows(h) {
			pdf.AddPage()
			d.tableHeader(b, left)
			d.font("", 10, colorText)
		}

		x, y := left, pdf.GetY()
		for i, lines := range cells {
			pdf.Rect(x, y, b.widths[i], h, "D")
			for k, line := range lines {
				pdf.SetXY(x, y+cellPadMM+float64(k)*cellLineMM)
				pdf.CellFormat(b.widths[i], cellLineMM, line, "", 0, b.aligns[i], false, 0, "")
			}
			x += b.widths[i]
		}
		pdf.SetXY(left, y+h)
	}

	var labelW float64
	for _, w := range b.widths[:len(b.widths)-1] {
		labelW += w
	}
	pdf.SetX(left)
	pdf.SetFillColor(colorTotalBg.r, colorTotalBg.g, colorTotalBg.b)
	d.font("B", 10, colorText)
	pdf.CellFormat(labelW, rowHeight, b.total[0], "1", 0, "L", true, 0, "")
	pdf.CellFormat(b.widths[len(b.widths)-1], rowHeight, b.total[1], "1", 1, "R", true, 0, "")
}

func (d *pdfDrawer) tableHeader(b block, left float64) {
	pdf := d.pdf
	pdf.SetX(left)
	pdf.SetFillColor(colorHeaderBg.r, colorHeaderBg.g, colorHeaderBg.b)
	d.font("B", 10, colorText)
	for i, h := range b.header {
		pdf.CellFormat(b.widths[i], rowHeight, h, "1", 0, b.aligns[i], true, 0, "")
	}
	pdf.Ln(-1)
}

// cellLines wraps s into lines that fit a cell of width w in the current
// font. Words longer than the cell are broken mid-word, never cut.
func (d *pdfDrawer) cellLines(s string, w float64) []string {
	lines := d.pdf.SplitText(s, w)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func (d *pdfDrawer) overflows(h float64) bool {
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	return d.pdf.GetY()+h > pageH-bottom
}
