// Package export serializes a filtered view for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"supermarket-dashboard/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const baseFilename = "filtered_supermarket_data"

// ParseFormat accepts a case-insensitive format name; empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

func Filename(f Format) string {
	return baseFilename + "." + string(f)
}

// Encode dispatches on format.
func Encode(f Format, view *models.View) ([]byte, error) {
	switch f {
	case FormatCSV:
		return CSV(view)
	case FormatXLSX:
		return XLSX(view)
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}

// CSV writes the header followed by one line per record, without any row
// index column.
func CSV(view *models.View) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(view.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, rec := range view.Records {
		if err := w.Write(rec.Cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
