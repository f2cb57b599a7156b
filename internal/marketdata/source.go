package marketdata

import (
	"context"
	"time"

	"github.com/minsuoh/krxpulse/internal/domain/models"
)

// Status tags the result of one per-instrument fetch.
type Status int

const (
	// StatusOK: a valid single-value series was retrieved.
	StatusOK Status = iota
	// StatusNoData: the source answered but had nothing usable for the
	// instrument in the requested range.
	StatusNoData
	// StatusShapeMismatch: the source returned something that is not a
	// one-dimensional value series. The offending shape is in Detail.
	StatusShapeMismatch
	// StatusFetchError: transport or remote failure, including timeout.
	// The underlying cause is in Err.
	StatusFetchError
)

// Outcome is the tagged per-instrument fetch result. Exactly one of the
// payload fields is meaningful for a given Status: Series for OK, Detail
// for NoData/ShapeMismatch, Err for FetchError.
type Outcome struct {
	Status Status
	Series models.Series
	Detail string
	Err    error
}

func ok(s models.Series) Outcome   { return Outcome{Status: StatusOK, Series: s} }
func noData(detail string) Outcome { return Outcome{Status: StatusNoData, Detail: detail} }
func fetchError(err error) Outcome { return Outcome{Status: StatusFetchError, Err: err} }

func shapeMismatch(detail string) Outcome {
	return Outcome{Status: StatusShapeMismatch, Detail: detail}
}

// Source is the upstream market-data dependency. Both calls are restricted
// to [start, end); a nil end means "through latest available". Neither call
// retries; the caller decides what a failure means for the batch.
type Source interface {
	// DailyCloses returns the daily closing-price series for a ticker.
	DailyCloses(ctx context.Context, ticker string, start time.Time, end *time.Time) Outcome
	// AnnualRevenue returns the annual total-revenue series for a ticker,
	// indexed by fiscal year.
	AnnualRevenue(ctx context.Context, ticker string, start time.Time, end *time.Time) Outcome
	// Ping reports whether the upstream is reachable. Used by readiness.
	Ping(ctx context.Context) error
}

// Fetch dispatches on mode. The two modes differ only in which series is
// requested; everything downstream treats them identically.
func Fetch(ctx context.Context, src Source, mode models.Mode, ticker string, start time.Time, end *time.Time) Outcome {
	if mode == models.ModeRevenue {
		return src.AnnualRevenue(ctx, ticker, start, end)
	}
	return src.DailyCloses(ctx, ticker, start, end)
}
