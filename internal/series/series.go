// Package series rebases aligned tables to a common baseline and reshapes
// them for the chart and table collaborators. All transforms are pure:
// they never modify their input.
package series

import (
	"github.com/minsuoh/krxpulse/internal/domain/models"
)

// Normalize rebases every column of t to 100 at that column's baseline:
// the first row where the column has a valid observation. Columns with no
// valid observation stay entirely missing; missing cells stay missing.
//
// A zero baseline is substituted with 1 before dividing. This keeps the
// series shape and avoids infinities, at the price of non-standard values
// (a true-zero baseline renders as 0, not 100). The substitution matches
// the long-observed dashboard behavior and is intentionally not "fixed"
// here.
func Normalize(t models.Table) models.Table {
	out := models.Table{
		Dates:   t.Dates,
		Names:   t.Names,
		Columns: make(map[string][]models.Cell, len(t.Columns)),
	}
	for _, name := range t.Names {
		col := t.Columns[name]
		cells := make([]models.Cell, len(col))

		baseline, found := 0.0, false
		for _, c := range col {
			if c.Valid {
				baseline, found = c.Value, true
				break
			}
		}
		if !found {
			// Sparse instrument with nothing in range: a degraded column,
			// not an error.
			out.Columns[name] = cells
			continue
		}
		if baseline == 0 {
			baseline = 1
		}
		for i, c := range col {
			if c.Valid {
				cells[i] = models.Cell{Value: c.Value / baseline * 100, Valid: true}
			}
		}
		out.Columns[name] = cells
	}
	return out
}

// LongForm flattens a wide table into tidy chart rows: one row per valid
// cell, ordered by date then by column name. Missing cells are omitted
// entirely; the chart collaborator expects dense rows.
func LongForm(t models.Table) []models.ChartRow {
	rows := make([]models.ChartRow, 0, len(t.Dates)*len(t.Names))
	for i, d := range t.Dates {
		for _, name := range t.Names {
			if c := t.Columns[name][i]; c.Valid {
				rows = append(rows, models.ChartRow{Date: d, Name: name, Value: c.Value})
			}
		}
	}
	return rows
}

// Display wraps a table with rendering hints for the tabular collaborator.
// Identity transform: no computation, only formatting metadata.
func Display(t models.Table, mode models.Mode, rebased bool) models.DisplayTable {
	d := models.DisplayTable{Table: t, Precision: 0, Unit: "KRW", DateLayout: "2006-01-02"}
	if mode == models.ModeRevenue {
		d.DateLayout = "2006"
	}
	if rebased {
		d.Precision = 2
		d.Unit = "index"
	}
	return d
}
