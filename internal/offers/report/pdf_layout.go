package report

import "strings"

type blockKind int

const (
	blockLogo blockKind = iota
	blockTitle
	blockSubtitle
	blockCaption
	blockHeading
	blockKeyValue
	blockTable
	blockBanner
	blockParagraph
	blockSpacer
	blockFooter
)

// Table geometry in millimetres. Every table is tableWidth wide and centred.
const (
	tableWidth  = 160.0
	rowHeight   = 7.0
	termsLeadMM = 5.0
	blankLineMM = 2.5
)

var (
	keyValueWidths = []float64{40, 120}
	laborWidths    = []float64{60, 30, 35, 35}
	materialWidths = []float64{50, 20, 20, 35, 35}
)

// block is one flowable element of the PDF document.
type block struct {
	kind   blockKind
	text   string
	lines  []string
	header []string
	rows   [][]string
	total  []string
	widths []float64
	aligns []string
	height float64
	logo   *pdfLogo
}

// layout turns the view into the ordered flowables drawn by renderPDF.
// A nil logo produces no logo block.
func layout(v view, logo *pdfLogo) []block {
	out := make([]block, 0, 24)

	if logo != nil {
		out = append(out, block{kind: blockLogo, logo: logo})
	}
	out = append(out,
		block{kind: blockTitle, text: v.CompanyName},
		block{kind: blockSubtitle, text: subtitle},
	)
	if v.TaxID != "" {
		out = append(out, block{kind: blockCaption, text: "VAT ID: " + v.TaxID})
	}

	out = append(out,
		block{kind: blockHeading, text: "Project Information"},
		block{kind: blockKeyValue, widths: keyValueWidths, rows: [][]string{
			{"Project Name:", v.ProjectName},
			{"Description:", v.Description},
			{"Date:", v.Date},
		}},
		block{kind: blockHeading, text: "Customer Information"},
		block{kind: blockKeyValue, widths: keyValueWidths, rows: [][]string{
			{"Name:", v.CustomerName},
			{"Email:", v.CustomerEmail},
			{"Address:", v.CustomerAddress},
		}},
	)

	labor := make([][]string, 0, len(v.Labor))
	for _, l := range v.Labor {
		labor = append(labor, []string{l.WorkerType, l.Hours, l.Rate, l.Cost})
	}
	out = append(out,
		block{kind: blockHeading, text: "Labor Costs"},
		block{
			kind:   blockTable,
			widths: laborWidths,
			aligns: []string{"L", "R", "R", "R"},
			header: []string{"Worker Type", "Hours", "Rate / hr", "Cost"},
			rows:   labor,
			total:  []string{"Subtotal Labor", v.TotalLabor},
		},
	)

	materials := make([][]string, 0, len(v.Materials))
	for _, m := range v.Materials {
		materials = append(materials, []string{m.Name, m.Quantity, m.Unit, m.UnitPrice, m.Cost})
	}
	out = append(out,
		block{kind: blockHeading, text: "Material Costs"},
		block{
			kind:   blockTable,
			widths: materialWidths,
			aligns: []string{"L", "R", "L", "R", "R"},
			header: []string{"Material", "Qty", "Unit", "Unit Price", "Cost"},
			rows:   materials,
			total:  []string{"Subtotal Materials", v.TotalMaterials},
		},
		block{kind: blockBanner, text: "Grand Total: " + v.GrandTotal},
	)

	if v.Terms != nil {
		out = append(out, block{kind: blockHeading, text: "Terms and Conditions"})
		for _, line := range v.Terms {
			if strings.TrimSpace(line) == "" {
				out = append(out, block{kind: blockSpacer, height: blankLineMM})
				continue
			}
			out = append(out, block{kind: blockParagraph, text: line})
		}
	}

	out = append(out, block{kind: blockFooter, lines: []string{validityNotice, v.GeneratedOn}})
	return out
}
