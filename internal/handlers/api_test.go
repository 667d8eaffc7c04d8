package handlers

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/dataset"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/services"
)

func createTestAnalytics() *services.Analytics {
	dec := decimal.RequireFromString
	a := services.NewAnalytics()
	a.SetData(dataset.New(nil, []models.Record{
		{
			City: "A", CustomerType: "Member", ProductLine: "Food",
			Date:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Sales: dec("100"), Rating: dec("8"), GrossIncome: dec("5"), Payment: "Cash",
		},
		{
			City: "A", CustomerType: "Normal", ProductLine: "Food",
			Date:  time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			Sales: dec("50"), Rating: dec("6"), GrossIncome: dec("2.5"), Payment: "Card",
		},
		{
			City: "B", CustomerType: "Member", ProductLine: "Electronics",
			Date:  time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			Sales: dec("200"), Rating: dec("9"), GrossIncome: dec("20"), Payment: "Cash",
		},
	}))
	return a
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	var response struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if !response.Success {
		t.Fatal("expected success=true in response")
	}
	if err := json.Unmarshal(response.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
}

func TestNewAPIHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	logger := slog.Default()
	handlers := NewAPIHandlers(analytics, logger)

	if handlers == nil {
		t.Error("NewAPIHandlers() returned nil")
	}

	if handlers.analytics != analytics {
		t.Error("NewAPIHandlers() should set analytics field")
	}
}

func TestAPIHandlers_HandleSummary(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/summary?city=A", nil)
	w := httptest.NewRecorder()

	handlers.HandleSummary(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content-type 'application/json', got %q", ct)
	}

	if cc := w.Header().Get("Cache-Control"); cc != cacheControl {
		t.Errorf("expected cache-control %q, got %q", cacheControl, cc)
	}

	var summary map[string]any
	decodeData(t, w, &summary)

	if summary["total_sales"] != "150" {
		t.Errorf("total_sales = %v, want 150", summary["total_sales"])
	}
	if summary["gross_income"] != "7.5" {
		t.Errorf("gross_income = %v, want 7.5", summary["gross_income"])
	}
	if summary["average_rating"] != "7" {
		t.Errorf("average_rating = %v, want 7", summary["average_rating"])
	}
	if summary["has_data"] != true {
		t.Error("expected has_data=true")
	}
}

func TestAPIHandlers_HandleSummary_NoData(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/summary?city=Nowhere", nil)
	w := httptest.NewRecorder()
	handlers.HandleSummary(w, req)

	var summary map[string]any
	decodeData(t, w, &summary)

	if summary["has_data"] != false {
		t.Error("expected has_data=false")
	}
	if v, ok := summary["average_rating"]; !ok || v != nil {
		t.Errorf("average_rating = %v, want explicit null", v)
	}
	if summary["total_sales"] != "0" {
		t.Errorf("total_sales = %v, want 0", summary["total_sales"])
	}
}

func TestAPIHandlers_GroupEndpoints(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), slog.Default())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		query   string
		want    int
	}{
		{"product lines", handlers.HandleProductLines, "", 2},
		{"monthly sales", handlers.HandleMonthlySales, "", 2},
		{"ratings", handlers.HandleRatings, "", 2},
		{"payments", handlers.HandlePayments, "", 2},
		{"product lines city B", handlers.HandleProductLines, "?city=B", 1},
		{"payments empty", handlers.HandlePayments, "?customer_type=", 0},
		{"monthly empty", handlers.HandleMonthlySales, "?product_line=", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/x"+tt.query, nil)
			w := httptest.NewRecorder()

			tt.handler(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}

			var items []map[string]any
			decodeData(t, w, &items)
			if items == nil {
				t.Fatal("expected a JSON array, got null")
			}
			if len(items) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestAPIHandlers_HandleFacets(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/facets", nil)
	w := httptest.NewRecorder()
	handlers.HandleFacets(w, req)

	var opts map[string][]string
	decodeData(t, w, &opts)

	if got := strings.Join(opts["city"], ","); got != "A,B" {
		t.Errorf("city options = %q, want A,B", got)
	}
	if got := strings.Join(opts["product_line"], ","); got != "Food,Electronics" {
		t.Errorf("product_line options = %q, want Food,Electronics", got)
	}
}

func TestAPIHandlers_HandleRows(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/rows?limit=1", nil)
	w := httptest.NewRecorder()
	handlers.HandleRows(w, req)

	var rows rowsResponse
	decodeData(t, w, &rows)

	if rows.Total != 3 {
		t.Errorf("total = %d, want 3", rows.Total)
	}
	if len(rows.Rows) != 1 {
		t.Errorf("expected 1 row with limit=1, got %d", len(rows.Rows))
	}
	if len(rows.Columns) != len(models.RequiredColumns) {
		t.Errorf("expected %d columns, got %d", len(models.RequiredColumns), len(rows.Columns))
	}
}

func TestAPIHandlers_HandleExport(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), slog.Default())

	tests := []struct {
		name        string
		query       string
		status      int
		contentType string
		filename    string
	}{
		{"default csv", "", http.StatusOK, "text/csv", "filtered_supermarket_data.csv"},
		{"xlsx", "?format=XLSX", http.StatusOK, "spreadsheetml", "filtered_supermarket_data.xlsx"},
		{"unknown", "?format=pdf", http.StatusBadRequest, "application/json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/export"+tt.query, nil)
			w := httptest.NewRecorder()
			handlers.HandleExport(w, req)

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}
			if tt.filename != "" && !strings.Contains(w.Header().Get("Content-Disposition"), tt.filename) {
				t.Errorf("content-disposition = %q, want %q", w.Header().Get("Content-Disposition"), tt.filename)
			}
		})
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handlers.HandleHealth(w, req)

	var health struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Records   int    `json:"records"`
	}
	decodeData(t, w, &health)

	if health.Status != "healthy" {
		t.Errorf("expected status 'healthy', got %q", health.Status)
	}
	if _, err := time.Parse(time.RFC3339, health.Timestamp); err != nil {
		t.Errorf("timestamp should be RFC3339: %v", err)
	}
	if health.Records != 3 {
		t.Errorf("expected 3 records, got %d", health.Records)
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	handlers.HandleStats(w, req)

	var stats map[string]any
	decodeData(t, w, &stats)

	if stats["record_count"] != float64(3) {
		t.Errorf("record_count = %v, want 3", stats["record_count"])
	}
	if stats["product_lines"] != float64(2) {
		t.Errorf("product_lines = %v, want 2", stats["product_lines"])
	}
}

func TestSelectionFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		facet     models.Facet
		want      []string
		constrain bool
	}{
		{"absent", "", models.FacetCity, nil, false},
		{"repeated", "city=A&city=B", models.FacetCity, []string{"A", "B"}, true},
		{"comma kept verbatim", "product_line=Food%2C+beverages", models.FacetProductLine, []string{"Food, beverages"}, true},
		{"blank is empty set", "product_line=", models.FacetProductLine, []string{}, true},
		{"other facet untouched", "city=A", models.FacetCustomerType, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			sel := selectionFromQuery(req.URL.Query())

			got, ok := sel.Values(tt.facet)
			if ok != tt.constrain {
				t.Fatalf("constrained = %v, want %v", ok, tt.constrain)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("values = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIHandlers_HandleExport_CommaInCategory(t *testing.T) {
	dec := decimal.RequireFromString
	analytics := services.NewAnalytics()
	analytics.SetData(dataset.New(nil, []models.Record{{
		City: "Yangon", CustomerType: "Member", ProductLine: "Food, beverages",
		Date:  time.Date(2019, 1, 5, 0, 0, 0, 0, time.UTC),
		Sales: dec("548.9715"), Rating: dec("9.1"), GrossIncome: dec("26.1415"), Payment: "Ewallet",
	}}))
	handlers := NewAPIHandlers(analytics, slog.Default())
	sse := NewSSEHandlers(analytics, slog.Default())

	q := url.Values{}
	q.Add("city", "Yangon")
	q.Add("customer_type", "Member")
	q.Add("product_line", "Food, beverages")
	q.Add("format", "csv")

	req := httptest.NewRequest(http.MethodGet, "/api/export?"+q.Encode(), nil)
	w := httptest.NewRecorder()
	handlers.HandleExport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}

	signals := selectionSignals{
		City:         &[]string{"Yangon"},
		CustomerType: &[]string{"Member"},
		ProductLine:  &[]string{"Food, beverages"},
	}
	onPage := sse.analytics.Filter(signals.selection()).Len()

	if onPage != 1 {
		t.Fatalf("page shows %d rows, want 1", onPage)
	}
	if got := len(rows) - 1; got != onPage {
		t.Errorf("export has %d data rows, page shows %d", got, onPage)
	}
	if rows[1][2] != "Food, beverages" {
		t.Errorf("product line cell = %q", rows[1][2])
	}
}
