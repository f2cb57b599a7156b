package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TrendRequest carries one dashboard query through the pipeline.
//
// Instruments maps display name to ticker. End nil means "through latest
// available". The range is end-exclusive: [Start, End).
type TrendRequest struct {
	Instruments map[string]string
	Start       time.Time
	End         *time.Time
	Mode        Mode
	Rebase      bool
}

// SortedInstruments returns the request's instruments ordered by name.
// Iteration over the map must never reach the output, so every consumer
// goes through this.
func (r TrendRequest) SortedInstruments() []Instrument {
	out := make([]Instrument, 0, len(r.Instruments))
	for name, ticker := range r.Instruments {
		out = append(out, Instrument{Name: name, Ticker: ticker})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CacheKey builds a canonical key for the request: identical requests map
// to identical keys regardless of map iteration order.
func (r TrendRequest) CacheKey() string {
	var b strings.Builder
	for _, ins := range r.SortedInstruments() {
		fmt.Fprintf(&b, "%s=%s;", ins.Name, ins.Ticker)
	}
	end := "open"
	if r.End != nil {
		end = r.End.Format("2006-01-02")
	}
	fmt.Fprintf(&b, "start=%s;end=%s;mode=%s;rebase=%t",
		r.Start.Format("2006-01-02"), end, r.Mode, r.Rebase)
	return b.String()
}

// DisplayTable is the wide table handed to the tabular renderer: the
// aligned or normalized table plus formatting hints. No computation happens
// here, the renderer shows it verbatim.
type DisplayTable struct {
	Table
	// Precision is the number of decimal places the renderer should use.
	Precision int `json:"precision" example:"0"`
	// Unit labels the values: "KRW" for raw prices and revenue, "index"
	// for series rebased to 100.
	Unit string `json:"unit" example:"KRW"`
	// DateLayout is the Go layout the renderer should format Dates with
	// ("2006-01-02" for daily closes, "2006" for fiscal years).
	DateLayout string `json:"date_layout" example:"2006-01-02"`
}

// TrendResult is the full pipeline output for one request.
type TrendResult struct {
	Display  DisplayTable
	Chart    []ChartRow
	Warnings []Warning
}
