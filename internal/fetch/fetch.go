package fetch

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/minsuoh/krxpulse/internal/domain/models"
	"github.com/minsuoh/krxpulse/internal/logger"
	"github.com/minsuoh/krxpulse/internal/marketdata"
)

const maxParallel = 8

// Batcher fetches every instrument of a request concurrently and merges
// the successful series into one aligned table.
//
// Failure policy: a per-instrument failure (no data, wrong shape,
// transport error, timeout) drops that instrument and becomes a warning;
// the batch continues. Only a merge-time structural failure degrades the
// whole batch to an empty table.
type Batcher struct {
	src      marketdata.Source
	timeout  time.Duration
	parallel int
}

// NewBatcher builds a Batcher. timeout bounds each individual fetch;
// parallel bounds in-flight fetches (0 = min(4, NumCPU), capped at 8 to
// stay polite with the upstream source).
func NewBatcher(src marketdata.Source, timeout time.Duration, parallel int) *Batcher {
	if parallel <= 0 {
		parallel = 4
		if c := runtime.NumCPU(); c < parallel {
			parallel = c
		}
	}
	if parallel > maxParallel {
		parallel = maxParallel
	}
	return &Batcher{src: src, timeout: timeout, parallel: parallel}
}

// Fetch retrieves all instruments of req and returns the aligned table
// plus warnings for every dropped instrument. Warnings are keyed and
// ordered by instrument name, never by completion order, so the result is
// stable under concurrency.
//
// An empty instrument set is a valid caller state: empty table, no
// warnings.
func (b *Batcher) Fetch(ctx context.Context, req models.TrendRequest) (models.Table, []models.Warning) {
	instruments := req.SortedInstruments()
	if len(instruments) == 0 {
		return emptyTable(), nil
	}

	logger.L().Info().
		Int("instruments", len(instruments)).
		Str("mode", string(req.Mode)).
		Int("max_parallel", b.parallel).
		Msg("batch fetch start")

	var mu sync.Mutex
	outcomes := make(map[string]marketdata.Outcome, len(instruments))

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, b.parallel)

	for i, ins := range instruments {
		idx, ins := i, ins
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()

			fctx, cancel := context.WithTimeout(gctx, b.timeout)
			out := marketdata.Fetch(fctx, b.src, req.Mode, ins.Ticker, req.Start, req.End)
			cancel()

			mu.Lock()
			outcomes[ins.Name] = out
			mu.Unlock()

			ev := logger.L().Info()
			if out.Status != marketdata.StatusOK {
				ev = logger.L().Warn()
			}
			ev.Int("idx", idx+1).Int("total", len(instruments)).
				Str("name", ins.Name).Str("ticker", ins.Ticker).
				Int("status", int(out.Status)).
				Dur("elapsed", time.Since(start)).
				Msg("instrument fetched")

			// Per-instrument failures never abort the batch.
			return nil
		})
	}
	_ = g.Wait()

	warnings := make([]models.Warning, 0, len(instruments))
	series := make(map[string]models.Series, len(instruments))
	for _, ins := range instruments {
		out := outcomes[ins.Name]
		switch out.Status {
		case marketdata.StatusOK:
			series[ins.Name] = out.Series
		case marketdata.StatusNoData:
			warnings = append(warnings, models.Warning{Name: ins.Name, Kind: models.WarnNoData, Detail: out.Detail})
		case marketdata.StatusShapeMismatch:
			warnings = append(warnings, models.Warning{Name: ins.Name, Kind: models.WarnShapeMismatch, Detail: out.Detail})
		case marketdata.StatusFetchError:
			warnings = append(warnings, models.Warning{Name: ins.Name, Kind: models.WarnFetchError, Detail: out.Err.Error()})
		}
	}

	table, err := merge(series)
	if err != nil {
		// Last-resort guard: shape problems are not always detectable per
		// instrument. Degrade to an empty result rather than return a
		// partially corrupt table.
		logger.L().Error().Err(err).Msg("batch merge failed")
		return emptyTable(), append(warnings, models.Warning{Kind: models.WarnStructural, Detail: err.Error()})
	}
	return table, warnings
}

// merge outer-joins the fetched series on date: the table index is the
// sorted union of all observation dates, and each column carries explicit
// missing cells where its series had no observation.
func merge(series map[string]models.Series) (models.Table, error) {
	if len(series) == 0 {
		return emptyTable(), nil
	}

	names := make([]string, 0, len(series))
	dateSet := make(map[time.Time]struct{})
	for name, s := range series {
		if err := s.Validate(); err != nil {
			return models.Table{}, err
		}
		names = append(names, name)
		for _, p := range s {
			dateSet[p.Date] = struct{}{}
		}
	}
	sort.Strings(names)

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	row := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		row[d] = i
	}

	columns := make(map[string][]models.Cell, len(names))
	for _, name := range names {
		cells := make([]models.Cell, len(dates))
		for _, p := range series[name] {
			cells[row[p.Date]] = models.Cell{Value: p.Value, Valid: true}
		}
		columns[name] = cells
	}

	return models.Table{Dates: dates, Names: names, Columns: columns}, nil
}

func emptyTable() models.Table {
	return models.Table{Names: []string{}, Columns: map[string][]models.Cell{}}
}
