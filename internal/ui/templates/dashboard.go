package templates

import (
	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"supermarket-dashboard/internal/models"
)

const (
	pageTitle      = "Supermarket Sales Dashboard"
	datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"
	chartScript    = "https://cdn.jsdelivr.net/npm/chart.js@4.4.4/dist/chart.umd.min.js"
)

// ChartSignals is the signal payload the chart scripts read. The keys are
// underscore-prefixed so the client keeps them local and never posts them
// back with a refresh.
func ChartSignals(r *models.Report) map[string]any {
	return map[string]any{
		"_productLines": r.ProductLines,
		"_monthlySales": r.MonthlySales,
		"_ratings":      r.Ratings,
		"_payments":     r.Payments,
		"_hasData":      r.HasData,
	}
}

// Dashboard renders the full page for the initial, unfiltered report.
func Dashboard(r *models.Report) Node {
	signals := ChartSignals(r)
	for _, f := range models.Facets {
		signals[SignalName(f)] = r.Options[f]
	}

	return Doctype(HTML(Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(pageTitle)),
			Script(Type("module"), Src(datastarScript)),
			Script(Src(chartScript)),
			StyleEl(Raw(pageStyle)),
		),
		Body(
			data.Signals(signals),
			H1(Text(pageTitle)),
			Div(Class("layout"),
				Aside(Class("sidebar"),
					H2(Text("Filter Data")),
					Form(ID("filters"), Attr("data-on:change", "@get('/sse/refresh')"),
						Map(models.Facets, func(f models.Facet) Node {
							return facetOptions(f, r.Options[f])
						}),
					),
				),
				Main(
					Status(r.HasData),
					Metrics(r.Summary),
					chartSection("Sales by Product Line", "product-chart"),
					chartSection("Monthly Sales Trend", "monthly-chart"),
					chartSection("Rating Distribution by Customer Type", "rating-chart"),
					chartSection("Payment Method Breakdown", "payment-chart"),
					Div(Attr("data-effect", "window.renderCharts && window.renderCharts($_productLines, $_monthlySales, $_ratings, $_payments)")),
					Details(Summary(Text("Show Raw Data")), RowsTable(r.View)),
					A(ID("download"), Class("button"), Href("/api/export?format=csv"),
						Attr("data-attr:href", "window.exportURL && window.exportURL($city, $customerType, $productLine)"),
						Text("Download Filtered Data as CSV"),
					),
				),
			),
			Script(Raw(chartJS)),
		),
	))
}

// facetOptions renders one checkbox per value, all bound to the facet's
// array signal so the checked values travel with every refresh.
func facetOptions(f models.Facet, options []string) Node {
	return FieldSet(
		Legend(Text(facetLabels[f])),
		Map(options, func(v string) Node {
			return Label(
				Input(Type("checkbox"), data.Bind(SignalName(f)), Value(v), Checked()),
				Text(" "+v),
			)
		}),
	)
}

func chartSection(title, canvasID string) Node {
	return Section(H2(Text(title)), El("canvas", ID(canvasID)))
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:0 1.5rem}
.layout{display:flex;gap:2rem}.sidebar{min-width:14rem}
fieldset{border:0;padding:0;margin-bottom:1rem}label{display:block}
.metrics-row{display:flex;gap:2rem;margin:1rem 0}.metric{display:flex;flex-direction:column}
.metric-label{color:#666}.metric-value{font-size:1.6rem;font-weight:600}
.no-data{padding:.75rem;background:#fff4e5;border:1px solid #f0c36d}
.modern-table{border-collapse:collapse;font-size:.85rem}.modern-table td,.modern-table th{padding:.25rem .5rem;border-bottom:1px solid #eee}
section{margin:1.5rem 0}canvas{max-height:360px}`

const chartJS = `
window.exportURL = function(city, customerType, productLine) {
  const q = new URLSearchParams({format: 'csv'});
  const add = (k, vs) => { if (!vs || vs.length === 0) { q.append(k, ''); return; } vs.forEach(v => q.append(k, v)); };
  add('city', city); add('customer_type', customerType); add('product_line', productLine);
  return '/api/export?' + q.toString();
};
window.charts = {};
window.renderCharts = function(productLines, monthlySales, ratings, payments) {
  if (!window.Chart) return;
  const draw = (id, cfg) => {
    if (window.charts[id]) window.charts[id].destroy();
    window.charts[id] = new Chart(document.getElementById(id), cfg);
  };
  draw('product-chart', {type: 'bar', options: {indexAxis: 'y'}, data: {
    labels: productLines.map(p => p.product_line),
    datasets: [{label: 'Sales', data: productLines.map(p => Number(p.sales)), backgroundColor: 'teal'}]}});
  draw('monthly-chart', {type: 'line', data: {
    labels: monthlySales.map(m => m.month),
    datasets: [{label: 'Sales', data: monthlySales.map(m => Number(m.sales)), pointStyle: 'circle'}]}});
  draw('rating-chart', {type: 'bar', data: {
    labels: ratings.map(r => r.customer_type),
    datasets: [
      {label: 'Q1-Q3', data: ratings.map(r => [r.box.q1, r.box.q3])},
      {label: 'Median', type: 'line', showLine: false, data: ratings.map(r => r.box.median)}]}});
  draw('payment-chart', {type: 'pie', data: {
    labels: payments.map(p => p.payment),
    datasets: [{data: payments.map(p => p.count)}]}});
};`
