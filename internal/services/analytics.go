package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"supermarket-dashboard/internal/dataset"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/observability"
)

// Analytics holds the process-wide dataset and runs the filter and aggregate
// pipeline against it. The dataset is immutable; mu only guards swapping it.
type Analytics struct {
	mu      sync.RWMutex
	data    *dataset.Dataset
	options models.FacetOptions

	reports atomic.Int64
	logger  *slog.Logger
}

func NewAnalytics() *Analytics {
	return &Analytics{
		data:    dataset.New(nil, nil),
		options: emptyOptions(),
		logger:  slog.Default(),
	}
}

func (a *Analytics) WithLogger(logger *slog.Logger) *Analytics {
	a.logger = logger
	return a
}

// SetData installs an already-built dataset.
func (a *Analytics) SetData(ds *dataset.Dataset) {
	opts := Catalog(ds)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = ds
	a.options = opts
}

// LoadFromCSV reads the dataset through loader. The loader memoizes, so
// calling this again with the same loader never re-reads the source.
func (a *Analytics) LoadFromCSV(ctx context.Context, loader *dataset.Loader) error {
	ds, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load csv: %w", err)
	}
	a.SetData(ds)
	return nil
}

func (a *Analytics) Dataset() *dataset.Dataset {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data
}

// Options returns the facet options derived at load time.
func (a *Analytics) Options() models.FacetOptions {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.options
}

// DefaultSelection selects every known value of every facet.
func (a *Analytics) DefaultSelection() models.Selection {
	return models.SelectAll(a.Options())
}

func (a *Analytics) Filter(sel models.Selection) *models.View {
	return Filter(a.Dataset(), sel)
}

// Report filters once and computes every downstream output concurrently.
func (a *Analytics) Report(ctx context.Context, sel models.Selection) (*models.Report, error) {
	ctx, span := observability.StartSpan(ctx, "analytics.report")
	defer span.Finish()

	start := time.Now()
	view := a.Filter(sel)
	span.SetAttr("rows", view.Len())

	report := &models.Report{
		Selection: selectionValues(sel),
		Options:   a.Options(),
		View:      view,
	}

	g, gctx := errgroup.WithContext(ctx)
	step := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}
	step(func() { report.Summary = Summarize(view) })
	step(func() { report.ProductLines = ByProductLine(view) })
	step(func() { report.MonthlySales = ByMonth(view) })
	step(func() { report.Ratings = RatingByCustomerType(view) })
	step(func() { report.Payments = ByPaymentMethod(view) })

	if err := g.Wait(); err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("build report: %w", err)
	}
	report.HasData = report.Summary.HasData()

	a.reports.Add(1)
	a.logger.Debug("report built",
		"rows", view.Len(),
		"duration", time.Since(start),
		"trace_id", span.TraceID,
	)
	return report, nil
}

// Stats is used by the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	ds := a.Dataset()
	opts := a.Options()

	return map[string]any{
		"record_count":   ds.Len(),
		"source":         ds.Source(),
		"loaded_at":      ds.LoadedAt(),
		"cities":         len(opts[models.FacetCity]),
		"customer_types": len(opts[models.FacetCustomerType]),
		"product_lines":  len(opts[models.FacetProductLine]),
		"reports_served": a.reports.Load(),
	}
}

func selectionValues(sel models.Selection) map[models.Facet][]string {
	out := make(map[models.Facet][]string, len(sel))
	for _, f := range models.Facets {
		if vals, ok := sel.Values(f); ok {
			out[f] = vals
		}
	}
	return out
}

func emptyOptions() models.FacetOptions {
	opts := make(models.FacetOptions, len(models.Facets))
	for _, f := range models.Facets {
		opts[f] = []string{}
	}
	return opts
}
