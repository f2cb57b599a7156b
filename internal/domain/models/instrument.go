package models

import "fmt"

// Instrument identifies one equity in a trend request.
//
// Fields:
//   - Name: display name used as the column key throughout the pipeline
//     (e.g., "Samsung Elec"). Must be unique within a request.
//   - Ticker: lookup symbol against the upstream source
//     (e.g., "005930.KS" for KOSPI, "042700.KQ" for KOSDAQ).
type Instrument struct {
	Name   string `json:"name" example:"Samsung Elec"`
	Ticker string `json:"ticker" example:"005930.KS"`
}

// Mode selects which series is fetched per instrument.
type Mode string

const (
	// ModePrice fetches daily closing prices.
	ModePrice Mode = "price"
	// ModeRevenue fetches annual total revenue from financial statements.
	ModeRevenue Mode = "revenue"
)

// ParseMode validates a mode string. An empty string defaults to ModePrice.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePrice, "":
		return ModePrice, nil
	case ModeRevenue:
		return ModeRevenue, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModePrice, ModeRevenue)
	}
}
