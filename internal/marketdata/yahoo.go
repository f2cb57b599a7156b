package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/minsuoh/krxpulse/internal/domain/models"
)

// revenuePath locates the annual total-revenue rows inside the
// fundamentals-timeseries response. The response shape varies across
// tickers and over time, so the field is plucked by path from loosely
// decoded JSON instead of a rigid struct.
const revenuePath = "$.timeseries.result[0].annualTotalRevenue"

// YahooSource implements Source against the Yahoo Finance public API:
// the v8 chart endpoint for daily closes and the fundamentals-timeseries
// endpoint for annual financials.
type YahooSource struct {
	client          *http.Client
	chartURL        string
	fundamentalsURL string
}

// NewYahooSource builds a source. chartURL and fundamentalsURL are the
// endpoint bases without trailing slash; the ticker is appended as a path
// segment. The client timeout is a hard upper bound per request; callers
// typically impose a tighter per-fetch deadline through ctx.
func NewYahooSource(chartURL, fundamentalsURL string, timeout time.Duration) *YahooSource {
	return &YahooSource{
		client:          &http.Client{Timeout: timeout},
		chartURL:        chartURL,
		fundamentalsURL: fundamentalsURL,
	}
}

// chartResponse is the v8 chart payload. Close values decode to nil for
// dates where the exchange reported no trade (holidays etc.).
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses fetches the daily closing series for ticker over [start, end).
func (y *YahooSource) DailyCloses(ctx context.Context, ticker string, start time.Time, end *time.Time) Outcome {
	period2 := time.Now().UTC()
	if end != nil {
		period2 = *end
	}
	u := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		y.chartURL, url.PathEscape(ticker), start.Unix(), period2.Unix())

	body, status, err := y.get(ctx, u)
	if err != nil {
		return fetchError(err)
	}
	if status == http.StatusNotFound {
		return noData(fmt.Sprintf("ticker not found (status %d)", status))
	}
	if status != http.StatusOK {
		return fetchError(fmt.Errorf("chart endpoint: status %d", status))
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return shapeMismatch(fmt.Sprintf("chart response is not valid JSON: %v", err))
	}
	if chart.Chart.Error != nil {
		return noData(chart.Chart.Error.Description)
	}
	results := chart.Chart.Result
	if len(results) == 0 {
		return noData("empty chart result")
	}
	if len(results) > 1 {
		return shapeMismatch(fmt.Sprintf("expected one chart result, got %d", len(results)))
	}
	res := results[0]
	// The close column must be a single value series aligned with the
	// timestamps. Multi-quote or misaligned payloads are a real upstream
	// failure mode and must be rejected, not indexed into.
	if n := len(res.Indicators.Quote); n != 1 {
		return shapeMismatch(fmt.Sprintf("expected one quote block, got %d", n))
	}
	closes := res.Indicators.Quote[0].Close
	if len(closes) != len(res.Timestamp) {
		return shapeMismatch(fmt.Sprintf("%d timestamps but %d close values", len(res.Timestamp), len(closes)))
	}

	series := make(models.Series, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if closes[i] == nil {
			continue
		}
		d := time.Unix(ts, 0).UTC()
		series = append(series, models.Point{
			Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Value: *closes[i],
		})
	}
	if len(series) == 0 {
		return noData("no observations in range")
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return ok(series)
}

// AnnualRevenue fetches the annual total-revenue series for ticker,
// restricted to fiscal years starting in [start, end). The index is the
// first day of the fiscal year so instruments with different fiscal
// year-ends still align on the same row.
func (y *YahooSource) AnnualRevenue(ctx context.Context, ticker string, start time.Time, end *time.Time) Outcome {
	period2 := time.Now().UTC()
	if end != nil {
		period2 = *end
	}
	u := fmt.Sprintf("%s/%s?symbol=%s&type=annualTotalRevenue&period1=%d&period2=%d",
		y.fundamentalsURL, url.PathEscape(ticker), url.QueryEscape(ticker), start.Unix(), period2.Unix())

	body, status, err := y.get(ctx, u)
	if err != nil {
		return fetchError(err)
	}
	if status == http.StatusNotFound {
		return noData(fmt.Sprintf("ticker not found (status %d)", status))
	}
	if status != http.StatusOK {
		return fetchError(fmt.Errorf("fundamentals endpoint: status %d", status))
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return shapeMismatch(fmt.Sprintf("fundamentals response is not valid JSON: %v", err))
	}
	rows, err := jsonpath.Get(revenuePath, doc)
	if err != nil {
		// The revenue field is simply absent: nothing reported.
		return noData(fmt.Sprintf("total revenue field absent: %v", err))
	}
	list, okType := rows.([]any)
	if !okType {
		return shapeMismatch(fmt.Sprintf("total revenue field is %T, not a series", rows))
	}

	series := make(models.Series, 0, len(list))
	for _, raw := range list {
		row, okType := raw.(map[string]any)
		if !okType {
			// Yahoo pads missing fiscal years with nulls.
			continue
		}
		asOf, okType := row["asOfDate"].(string)
		if !okType {
			return shapeMismatch("revenue row without asOfDate")
		}
		d, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			return shapeMismatch(fmt.Sprintf("unparseable asOfDate %q", asOf))
		}
		reported, okType := row["reportedValue"].(map[string]any)
		if !okType {
			continue
		}
		v, okType := reported["raw"].(float64)
		if !okType {
			continue
		}
		fy := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		if fy.Before(start) || (end != nil && !fy.Before(*end)) {
			continue
		}
		series = append(series, models.Point{Date: fy, Value: v})
	}
	if len(series) == 0 {
		return noData("no revenue reported in range")
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return ok(series)
}

// Ping checks upstream reachability with a minimal chart request. Any HTTP
// answer counts as reachable; only transport failures are reported.
func (y *YahooSource) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, y.chartURL, nil)
	if err != nil {
		return err
	}
	resp, err := y.client.Do(req)
	if err != nil {
		return fmt.Errorf("upstream unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (y *YahooSource) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	// Yahoo rejects requests without a browser-looking agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
