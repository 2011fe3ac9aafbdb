package costcal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinv/contractor-pm/internal/projects/domain"
)

func lookup(wts ...domain.WorkerType) WorkerTypeLookup {
	out := make(WorkerTypeLookup, len(wts))
	for _, wt := range wts {
		out[wt.ID] = wt
	}
	return out
}

func entry(id, wt int64, hours float64) domain.TimeEntry {
	return domain.TimeEntry{ID: id, WorkerTypeID: wt, Hours: hours}
}

func TestCompute(t *testing.T) {
	electrician := domain.WorkerType{ID: 1, Name: "Electrician", HourlyRate: 25}
	plumber := domain.WorkerType{ID: 2, Name: "Plumber", HourlyRate: 30}
	helper := domain.WorkerType{ID: 3, Name: "Helper", HourlyRate: 12.5}

	tests := []struct {
		name         string
		entries      []domain.TimeEntry
		lookup       WorkerTypeLookup
		materials    []domain.Material
		validateFunc func(t *testing.T, b Breakdown)
	}{
		{
			name:    "electrician and cable",
			entries: []domain.TimeEntry{entry(1, 1, 3.0), entry(2, 1, 4.5)},
			lookup:  lookup(electrician),
			materials: []domain.Material{
				{ID: 1, Name: "Cable", Quantity: 10, Unit: "m", UnitPrice: 1.2},
			},
			validateFunc: func(t *testing.T, b Breakdown) {
				require.Len(t, b.LaborLines, 1)
				assert.Equal(t, "Electrician", b.LaborLines[0].WorkerType)
				assert.InDelta(t, 7.5, b.LaborLines[0].Hours, 1e-9)
				assert.InDelta(t, 187.5, b.LaborLines[0].Cost, 1e-9)
				require.Len(t, b.MaterialLines, 1)
				assert.InDelta(t, 12.0, b.MaterialLines[0].Cost, 1e-9)
				assert.InDelta(t, 187.5, b.TotalLabor, 1e-9)
				assert.InDelta(t, 12.0, b.TotalMaterials, 1e-9)
				assert.InDelta(t, 199.5, b.GrandTotal, 1e-9)
				assert.Empty(t, b.OrphanedEntryIDs)
			},
		},
		{
			name: "first appearance decides order",
			entries: []domain.TimeEntry{
				entry(1, 2, 1), entry(2, 3, 2), entry(3, 1, 1), entry(4, 2, 3), entry(5, 3, 1),
			},
			lookup: lookup(electrician, plumber, helper),
			validateFunc: func(t *testing.T, b Breakdown) {
				require.Len(t, b.LaborLines, 3)
				assert.Equal(t, []string{"Plumber", "Helper", "Electrician"},
					[]string{b.LaborLines[0].WorkerType, b.LaborLines[1].WorkerType, b.LaborLines[2].WorkerType})
				assert.InDelta(t, 4.0, b.LaborLines[0].Hours, 1e-9)
				assert.InDelta(t, 120.0, b.LaborLines[0].Cost, 1e-9)
			},
		},
		{
			name:    "orphaned entry is excluded",
			entries: []domain.TimeEntry{entry(1, 1, 2), entry(2, 99, 8)},
			lookup:  lookup(electrician),
			validateFunc: func(t *testing.T, b Breakdown) {
				require.Len(t, b.LaborLines, 1)
				assert.InDelta(t, 50.0, b.TotalLabor, 1e-9)
				assert.Equal(t, []int64{2}, b.OrphanedEntryIDs)
			},
		},
		{
			name:   "unused worker type produces no line",
			lookup: lookup(electrician, plumber),
			validateFunc: func(t *testing.T, b Breakdown) {
				assert.Empty(t, b.LaborLines)
			},
		},
		{
			name:   "materials are not merged by name",
			lookup: lookup(),
			materials: []domain.Material{
				{ID: 1, Name: "Tile", Quantity: 2, UnitPrice: 10},
				{ID: 2, Name: "Tile", Quantity: 3, UnitPrice: 11},
				{ID: 3, Name: "Grout", Quantity: 0, UnitPrice: 7},
			},
			validateFunc: func(t *testing.T, b Breakdown) {
				require.Len(t, b.MaterialLines, 3)
				assert.Equal(t, int64(1), b.MaterialLines[0].MaterialID)
				assert.Equal(t, int64(2), b.MaterialLines[1].MaterialID)
				assert.Equal(t, 0.0, b.MaterialLines[2].Cost)
				assert.InDelta(t, 53.0, b.TotalMaterials, 1e-9)
				assert.InDelta(t, b.TotalMaterials, b.GrandTotal, 1e-9)
			},
		},
		{
			name:   "nothing at all",
			lookup: nil,
			validateFunc: func(t *testing.T, b Breakdown) {
				assert.Empty(t, b.LaborLines)
				assert.Empty(t, b.MaterialLines)
				assert.Zero(t, b.TotalLabor)
				assert.Zero(t, b.TotalMaterials)
				assert.Zero(t, b.GrandTotal)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, Compute(tt.entries, tt.lookup, tt.materials))
		})
	}
}

func TestCompute_GroupingPreservesTotal(t *testing.T) {
	wts := lookup(
		domain.WorkerType{ID: 1, Name: "A", HourlyRate: 17.3},
		domain.WorkerType{ID: 2, Name: "B", HourlyRate: 41.05},
		domain.WorkerType{ID: 3, Name: "C", HourlyRate: 9.99},
	)

	var entries []domain.TimeEntry
	var perEntry float64
	for i := 0; i < 60; i++ {
		wt := int64(i%3 + 1)
		hours := float64(i%7) * 0.75
		entries = append(entries, entry(int64(i+1), wt, hours))
		perEntry += hours * wts[wt].HourlyRate
	}

	b := Compute(entries, wts, nil)
	assert.InDelta(t, perEntry, b.TotalLabor, 1e-6)

	var sum float64
	for _, l := range b.LaborLines {
		sum += l.Cost
	}
	assert.InDelta(t, b.TotalLabor, sum, 1e-9)
	assert.InDelta(t, b.TotalLabor+b.TotalMaterials, b.GrandTotal, 1e-9)
}
