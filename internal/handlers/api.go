package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"supermarket-dashboard/internal/errors"
	"supermarket-dashboard/internal/export"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/observability"
	"supermarket-dashboard/internal/services"
)

const cacheControl = "private, max-age=60"

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *APIHandlers) view(r *http.Request) *models.View {
	return h.analytics.Filter(selectionFromQuery(r.URL.Query()))
}

func writeCached(w http.ResponseWriter, data any) {
	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleFacets(w http.ResponseWriter, r *http.Request) {
	writeCached(w, h.analytics.Options())
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	writeCached(w, services.Summarize(h.view(r)))
}

func (h *APIHandlers) HandleProductLines(w http.ResponseWriter, r *http.Request) {
	writeCached(w, services.ByProductLine(h.view(r)))
}

func (h *APIHandlers) HandleMonthlySales(w http.ResponseWriter, r *http.Request) {
	writeCached(w, services.ByMonth(h.view(r)))
}

func (h *APIHandlers) HandleRatings(w http.ResponseWriter, r *http.Request) {
	writeCached(w, services.RatingByCustomerType(h.view(r)))
}

func (h *APIHandlers) HandlePayments(w http.ResponseWriter, r *http.Request) {
	writeCached(w, services.ByPaymentMethod(h.view(r)))
}

type rowsResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

func (h *APIHandlers) HandleRows(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	limit := -1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errors.WriteError(w, h.logger, errors.BadRequest("limit must be a non-negative integer"), requestID)
			return
		}
		limit = n
	}

	view := h.view(r)
	resp := rowsResponse{
		Columns: view.Columns,
		Rows:    make([][]string, 0, view.Len()),
		Total:   view.Len(),
	}
	for i, rec := range view.Records {
		if limit >= 0 && i >= limit {
			break
		}
		resp.Rows = append(resp.Rows, rec.Cells)
	}
	writeCached(w, resp)
}

func (h *APIHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.Report(r.Context(), selectionFromQuery(r.URL.Query()))
	if err != nil {
		errors.WriteError(w, h.logger, errors.ServiceUnavailableWrap(err, "report cancelled"), observability.GetRequestID(r.Context()))
		return
	}
	writeCached(w, report)
}

// HandleExport streams the filtered rows as a download.
func (h *APIHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "unsupported export format"), requestID)
		return
	}

	view := h.view(r)
	body, err := export.Encode(format, view)
	if err != nil {
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "export failed"), requestID)
		return
	}

	h.logger.Info("export served",
		"format", format,
		"rows", view.Len(),
		"bytes", len(body),
		"request_id", requestID,
	)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
		"records":   h.analytics.Dataset().Len(),
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
