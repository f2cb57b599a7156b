package api

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minsuoh/krxpulse/internal/domain/dto"
	"github.com/minsuoh/krxpulse/internal/domain/models"
	"github.com/minsuoh/krxpulse/internal/middleware"
	"github.com/minsuoh/krxpulse/internal/service"
)

// Handler provides HTTP handlers for the trend endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Invoke the trend pipeline
//   - Translate pipeline results into response DTOs
type Handler struct {
	svc      service.TrendService
	universe map[string]string
}

// NewHandler constructs a Handler. universe is the default instrument set
// exposed on /api/v1/instruments.
func NewHandler(svc service.TrendService, universe map[string]string) *Handler {
	return &Handler{svc: svc, universe: universe}
}

// GetTrend handles GET /api/v1/trend requests.
//
// GetTrend godoc
// @Summary      Get aligned price or revenue trends
// @Description  Fetches the selected instruments over [start,end), aligns them on one time index, optionally rebases each series to 100 at its first observation, and returns a display table, chart rows, and per-instrument warnings
// @Tags         trend
// @Produce      json
// @Param        symbols  query     string  true   "Comma-separated Name:TICKER pairs"  example(Samsung Elec:005930.KS,SK Hynix:000660.KS)
// @Param        start    query     string  false  "Start date YYYY-MM-DD (default: one year ago)"  example(2024-09-01)
// @Param        end      query     string  false  "End date YYYY-MM-DD, exclusive (default: open)"  example(2025-09-01)
// @Param        mode     query     string  false  "price or revenue (default price)"  example(price)
// @Param        rebase   query     bool    false  "Rebase each series to 100 (default true)"  example(true)
// @Success      200      {object}  dto.TrendResponse      "Success"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/trend [get]
func (h *Handler) GetTrend(c *gin.Context) {
	instruments, err := parseSymbols(c.Query("symbols"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid symbols parameter", err)
		return
	}

	start := time.Now().UTC().AddDate(-1, 0, 0)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid start format, expected YYYY-MM-DD", err)
			return
		}
		start = parsed
	}

	var end *time.Time
	if s := c.Query("end"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid end format, expected YYYY-MM-DD", err)
			return
		}
		if !parsed.After(start) {
			middleware.AbortWithError(c, http.StatusBadRequest, "end must be after start", nil)
			return
		}
		end = &parsed
	}

	mode, err := models.ParseMode(c.Query("mode"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid mode", err)
		return
	}

	rebase := true
	if s := c.Query("rebase"); s != "" {
		parsed, err := strconv.ParseBool(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid rebase, expected true or false", err)
			return
		}
		rebase = parsed
	}

	req := models.TrendRequest{
		Instruments: instruments,
		Start:       start,
		End:         end,
		Mode:        mode,
		Rebase:      rebase,
	}

	res, err := h.svc.GetTrend(c.Request.Context(), req)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to compute trend", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTrendResponse(req, *res))
}

// GetInstruments handles GET /api/v1/instruments requests.
//
// GetInstruments godoc
// @Summary      List the default instrument universe
// @Description  Returns the configured Korean semiconductor instruments the dashboard offers by default
// @Tags         trend
// @Produce      json
// @Success      200  {object}  dto.UniverseResponse  "Success"
// @Router       /api/v1/instruments [get]
func (h *Handler) GetInstruments(c *gin.Context) {
	list := make([]models.Instrument, 0, len(h.universe))
	for name, ticker := range h.universe {
		list = append(list, models.Instrument{Name: name, Ticker: ticker})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	c.JSON(http.StatusOK, dto.UniverseResponse{Instruments: list})
}

// parseSymbols parses "Name:TICKER,Name:TICKER". Names must be unique:
// they are the column identity of the whole pipeline.
func parseSymbols(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errRequired
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, ticker, found := strings.Cut(pair, ":")
		name = strings.TrimSpace(name)
		ticker = strings.TrimSpace(ticker)
		if !found || name == "" || ticker == "" {
			return nil, errMalformedSymbol(pair)
		}
		if _, dup := out[name]; dup {
			return nil, errDuplicateName(name)
		}
		out[name] = ticker
	}
	return out, nil
}
