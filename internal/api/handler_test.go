package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minsuoh/krxpulse/internal/domain/dto"
	"github.com/minsuoh/krxpulse/internal/domain/models"
)

type mockService struct {
	gotReq models.TrendRequest
	result *models.TrendResult
	err    error
}

func (m *mockService) GetTrend(_ context.Context, req models.TrendRequest) (*models.TrendResult, error) {
	m.gotReq = req
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &models.TrendResult{}, nil
}

func doGet(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/trend", h.GetTrend)
	r.GET("/api/v1/instruments", h.GetInstruments)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetTrend_ParamValidation(t *testing.T) {
	cases := []struct {
		name   string
		target string
		want   int
	}{
		{name: "missing symbols", target: "/api/v1/trend", want: 400},
		{name: "symbols blank", target: "/api/v1/trend?symbols=%20", want: 400},
		{name: "malformed pair", target: "/api/v1/trend?symbols=SamsungElec", want: 400},
		{name: "empty ticker", target: "/api/v1/trend?symbols=X:", want: 400},
		{name: "empty name", target: "/api/v1/trend?symbols=:005930.KS", want: 400},
		{name: "duplicate name", target: "/api/v1/trend?symbols=X:AAA,X:BBB", want: 400},
		{name: "bad start", target: "/api/v1/trend?symbols=X:AAA&start=01-02-2024", want: 400},
		{name: "bad end", target: "/api/v1/trend?symbols=X:AAA&end=yesterday", want: 400},
		{name: "end before start", target: "/api/v1/trend?symbols=X:AAA&start=2024-06-01&end=2024-01-01", want: 400},
		{name: "end equals start", target: "/api/v1/trend?symbols=X:AAA&start=2024-06-01&end=2024-06-01", want: 400},
		{name: "bad mode", target: "/api/v1/trend?symbols=X:AAA&mode=volume", want: 400},
		{name: "bad rebase", target: "/api/v1/trend?symbols=X:AAA&rebase=maybe", want: 400},
		{name: "minimal valid", target: "/api/v1/trend?symbols=X:AAA", want: 200},
		{name: "fully specified", target: "/api/v1/trend?symbols=X:AAA,Y:BBB&start=2024-01-01&end=2024-06-01&mode=revenue&rebase=false", want: 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&mockService{}, nil)
			w := doGet(t, h, tc.target)
			if w.Code != tc.want {
				t.Fatalf("status %d, want %d (body: %s)", w.Code, tc.want, w.Body.String())
			}
			if tc.want == 400 {
				var resp dto.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Message == "" {
					t.Fatalf("error body: %s (%v)", w.Body.String(), err)
				}
			}
		})
	}
}

func TestGetTrend_BuildsRequest(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, nil)

	w := doGet(t, h, "/api/v1/trend?symbols=Samsung%20Elec:005930.KS,SK%20Hynix:000660.KS&start=2024-01-01&end=2024-07-01&mode=revenue&rebase=false")
	if w.Code != 200 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	req := svc.gotReq
	if len(req.Instruments) != 2 || req.Instruments["Samsung Elec"] != "005930.KS" {
		t.Fatalf("instruments: %+v", req.Instruments)
	}
	if !req.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start: %v", req.Start)
	}
	if req.End == nil || !req.End.Equal(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end: %v", req.End)
	}
	if req.Mode != models.ModeRevenue || req.Rebase {
		t.Fatalf("mode=%v rebase=%v", req.Mode, req.Rebase)
	}
}

func TestGetTrend_Defaults(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, nil)

	w := doGet(t, h, "/api/v1/trend?symbols=X:AAA")
	if w.Code != 200 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	req := svc.gotReq
	if req.Mode != models.ModePrice || !req.Rebase || req.End != nil {
		t.Fatalf("defaults: %+v", req)
	}
	wantStart := time.Now().UTC().AddDate(-1, 0, 0)
	if req.Start.Year() != wantStart.Year() || req.Start.Month() != wantStart.Month() {
		t.Fatalf("default start: %v", req.Start)
	}
	if h, m, s := req.Start.Clock(); h != 0 || m != 0 || s != 0 {
		t.Fatalf("default start not truncated to midnight: %v", req.Start)
	}
}

func TestGetTrend_ServiceError(t *testing.T) {
	h := NewHandler(&mockService{err: errors.New("pipeline exploded")}, nil)
	w := doGet(t, h, "/api/v1/trend?symbols=X:AAA")
	if w.Code != 500 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
}

func TestGetTrend_ResponseBody(t *testing.T) {
	result := &models.TrendResult{
		Display: models.DisplayTable{
			Table: models.Table{
				Dates:   []time.Time{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
				Names:   []string{"X"},
				Columns: map[string][]models.Cell{"X": {{Value: 100, Valid: true}}},
			},
			Precision: 2, Unit: "index", DateLayout: "2006-01-02",
		},
		Chart:    []models.ChartRow{{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Name: "X", Value: 100}},
		Warnings: []models.Warning{{Name: "Y", Kind: models.WarnFetchError, Detail: "timeout"}},
	}
	h := NewHandler(&mockService{result: result}, nil)

	w := doGet(t, h, "/api/v1/trend?symbols=X:AAA,Y:BBB")
	if w.Code != 200 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp dto.TrendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Mode != "price" || !resp.Rebased {
		t.Fatalf("header: %+v", resp)
	}
	if len(resp.Display.Dates) != 1 || resp.Display.Dates[0] != "2024-01-02" {
		t.Fatalf("display dates: %v", resp.Display.Dates)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Kind != models.WarnFetchError {
		t.Fatalf("warnings: %+v", resp.Warnings)
	}
}

func TestGetInstruments(t *testing.T) {
	universe := map[string]string{
		"SK Hynix":     "000660.KS",
		"Samsung Elec": "005930.KS",
		"DB Hitek":     "000990.KS",
	}
	h := NewHandler(&mockService{}, universe)

	w := doGet(t, h, "/api/v1/instruments")
	if w.Code != 200 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp dto.UniverseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	wantOrder := []string{"DB Hitek", "SK Hynix", "Samsung Elec"}
	if len(resp.Instruments) != 3 {
		t.Fatalf("instruments: %+v", resp.Instruments)
	}
	for i, name := range wantOrder {
		if resp.Instruments[i].Name != name {
			t.Fatalf("position %d: %q, want %q", i, resp.Instruments[i].Name, name)
		}
	}
}

func TestParseSymbols(t *testing.T) {
	got, err := parseSymbols(" Samsung Elec:005930.KS , SK Hynix:000660.KS ")
	if err != nil {
		t.Fatalf("parseSymbols: %v", err)
	}
	if got["Samsung Elec"] != "005930.KS" || got["SK Hynix"] != "000660.KS" {
		t.Fatalf("got %+v", got)
	}

	if _, err := parseSymbols("X:AAA,X:BBB"); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("duplicate names accepted: %v", err)
	}
}
