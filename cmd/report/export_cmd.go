package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"supermarket-dashboard/internal/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows as CSV or XLSX",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = export.Filename(f)
			}

			report, err := opts.report(cmd)
			if err != nil {
				return err
			}

			body, err := export.Encode(f, report.View)
			if err != nil {
				return fmt.Errorf("encode %s: %w", f, err)
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", report.View.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format (csv, xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "Output path (defaults to filtered_supermarket_data.<format>)")

	return cmd
}
