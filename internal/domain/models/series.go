package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Point is a single observation of an instrument's series.
type Point struct {
	Date  time.Time
	Value float64
}

// Series is the raw time-indexed series for one instrument, as returned by
// the upstream source. Dates are strictly increasing. A Series is never
// mutated after creation; alignment and normalization produce new tables.
type Series []Point

// Validate checks the series invariant: dates strictly increasing, no
// duplicates. Upstream responses are not trusted to hold it.
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i-1].Date.Before(s[i].Date) {
			return fmt.Errorf("series not strictly increasing at index %d (%s then %s)",
				i, s[i-1].Date.Format("2006-01-02"), s[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Cell is one table cell. Valid=false marks a missing observation: the
// instrument had no data at that index date. Missing is explicit, never
// zero and never interpolated.
type Cell struct {
	Value float64
	Valid bool
}

// MarshalJSON renders a missing cell as null so wide tables serialize the
// way chart and table collaborators expect.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts either a number or null.
func (c *Cell) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = Cell{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Cell{Value: v, Valid: true}
	return nil
}

// Table is a wide, date-indexed table: one row per date, one column per
// instrument name. It represents both the aligned (raw) and the normalized
// form of a batch.
//
// Invariants:
//   - Dates is strictly increasing and duplicate-free.
//   - Names is sorted ascending and matches the keys of Columns.
//   - len(Columns[name]) == len(Dates) for every name.
type Table struct {
	Dates   []time.Time       `json:"dates"`
	Names   []string          `json:"names"`
	Columns map[string][]Cell `json:"columns"`
}

// Empty reports whether the table has no rows and no columns.
func (t Table) Empty() bool {
	return len(t.Dates) == 0 && len(t.Names) == 0
}

// Column returns the cells for one instrument name, or nil if absent.
func (t Table) Column(name string) []Cell {
	return t.Columns[name]
}

// Validate checks the table invariants. Used by tests and by the merge
// guard; a Table built by this package's producers always satisfies them.
func (t Table) Validate() error {
	for i := 1; i < len(t.Dates); i++ {
		if !t.Dates[i-1].Before(t.Dates[i]) {
			return fmt.Errorf("table index not strictly increasing at row %d", i)
		}
	}
	if len(t.Names) != len(t.Columns) {
		return fmt.Errorf("names/columns mismatch: %d names, %d columns", len(t.Names), len(t.Columns))
	}
	for _, name := range t.Names {
		col, ok := t.Columns[name]
		if !ok {
			return fmt.Errorf("column %q listed but absent", name)
		}
		if len(col) != len(t.Dates) {
			return fmt.Errorf("column %q has %d cells for %d dates", name, len(col), len(t.Dates))
		}
	}
	return nil
}

// ChartRow is the long-form (tidy) representation consumed by the chart
// collaborator: one row per non-missing cell of a table.
type ChartRow struct {
	Date  time.Time `json:"date"`
	Name  string    `json:"name" example:"SK Hynix"`
	Value float64   `json:"value" example:"184.21"`
}
