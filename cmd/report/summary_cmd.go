package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"supermarket-dashboard/internal/models"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print metrics and grouped aggregates for the selection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := opts.report(cmd)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printSummary(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")

	return cmd
}

func printSummary(out io.Writer, r *models.Report) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	s := r.Summary
	_, _ = fmt.Fprintf(tw, "Rows\t%d\n", s.Rows)
	_, _ = fmt.Fprintf(tw, "Total sales\t%s\n", s.TotalSales.StringFixed(2))
	_, _ = fmt.Fprintf(tw, "Gross income\t%s\n", s.GrossIncome.StringFixed(2))
	if s.AverageRating.Valid {
		_, _ = fmt.Fprintf(tw, "Average rating\t%s\n", s.AverageRating.Decimal.StringFixed(2))
	} else {
		_, _ = fmt.Fprintln(tw, "Average rating\tNo data")
	}

	if !r.HasData {
		_, _ = fmt.Fprintln(tw, "\nNo data for the current selection.")
		return tw.Flush()
	}

	_, _ = fmt.Fprintln(tw, "\nProduct line\tSales")
	for _, p := range r.ProductLines {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", p.ProductLine, p.Sales.StringFixed(2))
	}

	_, _ = fmt.Fprintln(tw, "\nMonth\tSales")
	for _, m := range r.MonthlySales {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", m.Month, m.Sales.StringFixed(2))
	}

	_, _ = fmt.Fprintln(tw, "\nCustomer type\tRatings\tMedian")
	for _, d := range r.Ratings {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%.2f\n", d.CustomerType, len(d.Ratings), d.Box.Median)
	}

	_, _ = fmt.Fprintln(tw, "\nPayment\tCount\tShare")
	for _, p := range r.Payments {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", p.Payment, p.Count, p.Share)
	}

	if len(r.Selection) > 0 {
		_, _ = fmt.Fprintln(tw, "\nFilter\tValues")
		for _, f := range models.Facets {
			if vals, ok := r.Selection[f]; ok {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", f.Column(), strings.Join(vals, ", "))
			}
		}
	}

	return tw.Flush()
}
