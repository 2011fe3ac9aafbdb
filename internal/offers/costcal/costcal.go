// Package costcal turns a project's time entries and materials into priced lines.
//
// Aggregation never rounds; display precision is a rendering concern.
package costcal

import (
	"github.com/marinv/contractor-pm/internal/projects/domain"
)

// WorkerTypeLookup resolves a worker type id to its name and current hourly rate.
type WorkerTypeLookup map[int64]domain.WorkerType

// LaborLine is the total labor of one worker type.
type LaborLine struct {
	WorkerTypeID int64   `json:"worker_type_id"`
	WorkerType   string  `json:"worker_type"`
	Hours        float64 `json:"hours"`
	Rate         float64 `json:"rate"`
	Cost         float64 `json:"cost"`
}

// MaterialLine mirrors one material row with its computed cost.
type MaterialLine struct {
	MaterialID int64   `json:"material_id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
	Supplier   string  `json:"supplier,omitempty"`
	Cost       float64 `json:"cost"`
}

// Breakdown is the priced view of a project.
type Breakdown struct {
	LaborLines     []LaborLine    `json:"labor_lines"`
	MaterialLines  []MaterialLine `json:"material_lines"`
	TotalLabor     float64        `json:"total_labor"`
	TotalMaterials float64        `json:"total_materials"`
	GrandTotal     float64        `json:"grand_total"`

	// OrphanedEntryIDs lists time entries whose worker type did not resolve.
	// They are excluded from every figure above.
	OrphanedEntryIDs []int64 `json:"orphaned_entry_ids,omitempty"`
}

// Compute aggregates labor per worker type, in order of first appearance,
// and prices each material row on its own.
func Compute(entries []domain.TimeEntry, workerTypes WorkerTypeLookup, materials []domain.Material) Breakdown {
	b := Breakdown{
		LaborLines:    make([]LaborLine, 0, len(workerTypes)),
		MaterialLines: make([]MaterialLine, 0, len(materials)),
	}

	index := make(map[int64]int, len(workerTypes))
	for _, e := range entries {
		wt, ok := workerTypes[e.WorkerTypeID]
		if !ok {
			b.OrphanedEntryIDs = append(b.OrphanedEntryIDs, e.ID)
			continue
		}
		i, seen := index[e.WorkerTypeID]
		if !seen {
			i = len(b.LaborLines)
			index[e.WorkerTypeID] = i
			b.LaborLines = append(b.LaborLines, LaborLine{
				WorkerTypeID: wt.ID,
				WorkerType:   wt.Name,
				Rate:         wt.HourlyRate,
			})
		}
		b.LaborLines[i].Hours += e.Hours
	}

	for i := range b.LaborLines {
		l := &b.LaborLines[i]
		l.Cost = l.Hours * l.Rate
		b.TotalLabor += l.Cost
	}

	for _, m := range materials {
		line := MaterialLine{
			MaterialID: m.ID,
			Name:       m.Name,
			Quantity:   m.Quantity,
			Unit:       m.Unit,
			UnitPrice:  m.UnitPrice,
			Supplier:   m.Supplier,
			Cost:       m.Quantity * m.UnitPrice,
		}
		b.MaterialLines = append(b.MaterialLines, line)
		b.TotalMaterials += line.Cost
	}

	b.GrandTotal = b.TotalLabor + b.TotalMaterials
	return b
}
