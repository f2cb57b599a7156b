package dto

import (
	"github.com/minsuoh/krxpulse/internal/domain/models"
)

// TrendResponse is the JSON structure returned by GET /api/v1/trend.
//
// Display is the wide table for tabular rendering; Chart is the long-form
// rows the chart collaborator builds a line or bar chart from; Warnings
// lists every instrument that was dropped and why.
type TrendResponse struct {
	Mode     string           `json:"mode" example:"price"`
	Rebased  bool             `json:"rebased" example:"true"`
	Display  DisplayTable     `json:"display_table"`
	Chart    []ChartPoint     `json:"chart"`
	Warnings []models.Warning `json:"warnings"`
}

// DisplayTable is the wide table: one row per date, one value per column,
// null for missing cells, plus the formatting hints the renderer applies.
type DisplayTable struct {
	Dates     []string     `json:"dates" example:"2024-01-02,2024-01-03"`
	Columns   []string     `json:"columns" example:"SK Hynix,Samsung Elec"`
	Rows      [][]*float64 `json:"rows"`
	Precision int          `json:"precision" example:"2"`
	Unit      string       `json:"unit" example:"index"`
}

// ChartPoint is one long-form row: (date, instrument, value).
type ChartPoint struct {
	Date  string  `json:"date" example:"2024-01-02"`
	Name  string  `json:"name" example:"Samsung Elec"`
	Value float64 `json:"value" example:"100"`
}

// NewTrendResponse maps a pipeline result onto the API contract, formatting
// dates with the layout the result's display hints carry.
func NewTrendResponse(req models.TrendRequest, res models.TrendResult) TrendResponse {
	layout := res.Display.DateLayout
	if layout == "" {
		layout = "2006-01-02"
	}

	display := DisplayTable{
		Dates:     make([]string, 0, len(res.Display.Dates)),
		Columns:   res.Display.Names,
		Rows:      make([][]*float64, 0, len(res.Display.Dates)),
		Precision: res.Display.Precision,
		Unit:      res.Display.Unit,
	}
	if display.Columns == nil {
		display.Columns = []string{}
	}
	for i, d := range res.Display.Dates {
		display.Dates = append(display.Dates, d.Format(layout))
		row := make([]*float64, len(res.Display.Names))
		for j, name := range res.Display.Names {
			if c := res.Display.Columns[name][i]; c.Valid {
				v := c.Value
				row[j] = &v
			}
		}
		display.Rows = append(display.Rows, row)
	}

	chart := make([]ChartPoint, 0, len(res.Chart))
	for _, r := range res.Chart {
		chart = append(chart, ChartPoint{Date: r.Date.Format(layout), Name: r.Name, Value: r.Value})
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []models.Warning{}
	}

	return TrendResponse{
		Mode:     string(req.Mode),
		Rebased:  req.Rebase,
		Display:  display,
		Chart:    chart,
		Warnings: warnings,
	}
}
