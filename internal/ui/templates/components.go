// Package templates renders the dashboard page and the fragments the
// Datastar refresh endpoint patches into it.
package templates

import (
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"supermarket-dashboard/internal/models"
)

// MaxTableRows caps the raw table fragment. Downloads are never capped.
const MaxTableRows = 200

var facetLabels = map[models.Facet]string{
	models.FacetCity:         "Select City:",
	models.FacetCustomerType: "Customer Type:",
	models.FacetProductLine:  "Product Line:",
}

// signalNames are the Datastar signal keys bound to each facet.
var signalNames = map[models.Facet]string{
	models.FacetCity:         "city",
	models.FacetCustomerType: "customerType",
	models.FacetProductLine:  "productLine",
}

func SignalName(f models.Facet) string {
	return signalNames[f]
}

// Metrics renders the three headline cards. Without data the average rating
// reads "No data" rather than a number.
func Metrics(s models.Summary) Node {
	rating := "No data"
	if s.AverageRating.Valid {
		rating = s.AverageRating.Decimal.StringFixed(2)
	}
	return Div(ID("metrics"), Class("metrics-row"),
		metricCard("Total Sales", "$"+formatMoney(s.TotalSales.StringFixed(2))),
		metricCard("Average Rating", rating),
		metricCard("Gross Income", "$"+formatMoney(s.GrossIncome.StringFixed(2))),
	)
}

func metricCard(label, value string) Node {
	return Div(Class("metric"),
		Span(Class("metric-label"), Text(label)),
		Span(Class("metric-value"), Text(value)),
	)
}

// Status shows the no-data notice when a selection excludes every row.
func Status(hasData bool) Node {
	if hasData {
		return Div(ID("status"))
	}
	return Div(ID("status"), Class("no-data"), Text("No data for the current selection."))
}

// RowsTable renders up to MaxTableRows records of the view.
func RowsTable(view *models.View) Node {
	var (
		columns []string
		records []models.Record
	)
	if view != nil {
		columns = view.Columns
		records = view.Records[:min(len(view.Records), MaxTableRows)]
	}
	total := view.Len()

	return Div(ID("raw-data"),
		Table(Class("modern-table"),
			THead(Tr(Map(columns, func(c string) Node { return Th(Text(c)) }))),
			TBody(Map(records, func(rec models.Record) Node {
				return Tr(Map(rec.Cells, func(cell string) Node { return Td(Text(cell)) }))
			})),
		),
		If(total > MaxTableRows, P(Class("table-note"), Textf("Showing %d of %d rows.", MaxTableRows, total))),
	)
}

// formatMoney inserts thousands separators into a fixed-point string.
func formatMoney(fixed string) string {
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
