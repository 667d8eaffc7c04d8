package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
	"maragu.dev/gomponents"

	"supermarket-dashboard/internal/errors"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/observability"
	"supermarket-dashboard/internal/services"
	"supermarket-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func renderHTML(n gomponents.Node) (string, error) {
	var buf strings.Builder
	if err := n.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// readSelection decodes the facet signals. Missing signals leave the facet
// unconstrained, so a bare request reports on the whole dataset.
func (h *SSEHandlers) readSelection(r *http.Request) (models.Selection, error) {
	var signals selectionSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return nil, err
	}
	return signals.selection(), nil
}

// HandleRefresh recomputes the report for the posted selection and patches
// the status, metrics and raw table, then pushes the chart data as signals.
func (h *SSEHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	sel, err := h.readSelection(r)
	if err != nil {
		errors.WriteError(w, h.logger, errors.ValidationWrap(err, "invalid signals"), observability.GetRequestID(r.Context()))
		return
	}

	report, err := h.analytics.Report(r.Context(), sel)
	if err != nil {
		h.logger.Error("build report", "error", err)
		return
	}

	sse := datastar.NewSSE(w, r)

	for _, n := range []gomponents.Node{
		templates.Status(report.HasData),
		templates.Metrics(report.Summary),
		templates.RowsTable(report.View),
	} {
		html, err := renderHTML(n)
		if err != nil {
			h.logger.Error("render fragment", "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.Warn("patch elements", "error", err)
			return
		}
	}

	if err := h.patchCharts(sse, report); err != nil {
		h.logger.Error("patch chart signals", "error", err)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleCharts pushes only the chart signals, for clients that render their
// own metrics.
func (h *SSEHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	sel, err := h.readSelection(r)
	if err != nil {
		errors.WriteError(w, h.logger, errors.ValidationWrap(err, "invalid signals"), observability.GetRequestID(r.Context()))
		return
	}

	report, err := h.analytics.Report(r.Context(), sel)
	if err != nil {
		h.logger.Error("build report", "error", err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := h.patchCharts(sse, report); err != nil {
		h.logger.Error("patch chart signals", "error", err)
	}
}

func (h *SSEHandlers) patchCharts(sse *datastar.ServerSentEventGenerator, report *models.Report) error {
	payload, err := json.Marshal(templates.ChartSignals(report))
	if err != nil {
		return err
	}
	return sse.PatchSignals(payload)
}
