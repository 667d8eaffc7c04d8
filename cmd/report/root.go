package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"supermarket-dashboard/internal/config"
	"supermarket-dashboard/internal/dataset"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/observability"
	"supermarket-dashboard/internal/services"
)

// facetFlags maps each facet to its command-line flag.
var facetFlags = map[models.Facet]string{
	models.FacetCity:         "city",
	models.FacetCustomerType: "customer-type",
	models.FacetProductLine:  "product-line",
}

type rootOptions struct {
	csvFile  string
	logLevel string
	facets   map[models.Facet]*[]string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{facets: make(map[models.Facet]*[]string, len(models.Facets))}

	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Summaries and exports over the supermarket sales dataset",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.csvFile, "csv", "cleaned_supermarket_sales.csv", "Path to the cleaned sales CSV")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	for _, f := range models.Facets {
		vals := new([]string)
		opts.facets[f] = vals
		cmd.PersistentFlags().StringArrayVar(vals, facetFlags[f], nil,
			fmt.Sprintf("Restrict %s to this value (repeatable; an empty value selects nothing)", f.Column()))
	}

	cmd.AddCommand(newSummaryCmd(opts))
	cmd.AddCommand(newExportCmd(opts))

	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return observability.NewLoggerTo(cmd.ErrOrStderr(), config.LoggerConfig{Level: o.logLevel, Format: "text"})
}

// selection turns the facet flags into a Selection. Only flags the user set
// constrain the view, so --city= yields the empty set.
func (o *rootOptions) selection(cmd *cobra.Command) models.Selection {
	sel := models.NewSelection()
	for _, f := range models.Facets {
		if !cmd.Flags().Changed(facetFlags[f]) {
			continue
		}
		var vals []string
		for _, v := range *o.facets[f] {
			if v != "" {
				vals = append(vals, v)
			}
		}
		sel.Set(f, vals...)
	}
	return sel
}

// report loads the dataset and runs the full pipeline for the flag selection.
func (o *rootOptions) report(cmd *cobra.Command) (*models.Report, error) {
	logger := o.logger(cmd)

	analytics := services.NewAnalytics().WithLogger(logger)
	if err := analytics.LoadFromCSV(cmd.Context(), dataset.NewLoader(o.csvFile, logger)); err != nil {
		return nil, err
	}

	return analytics.Report(cmd.Context(), o.selection(cmd))
}
