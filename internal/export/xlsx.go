package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"supermarket-dashboard/internal/models"
)

const sheetName = "Sheet1"

// XLSX writes the view into a single-sheet workbook. Typed columns are
// stored as numbers and dates; everything else as text.
func XLSX(view *models.View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(view.Columns))
	for i, c := range view.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return nil, fmt.Errorf("create date style: %w", err)
	}

	dateCol := -1
	for i, c := range view.Columns {
		if c == models.ColumnDate {
			dateCol = i
		}
	}

	for r, rec := range view.Records {
		row := make([]any, len(view.Columns))
		for i, c := range view.Columns {
			row[i] = cellValue(c, &rec, rec.Cells[i])
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if dateCol >= 0 && len(view.Records) > 0 {
		col, err := excelize.ColumnNumberToName(dateCol + 1)
		if err != nil {
			return nil, err
		}
		last := fmt.Sprintf("%s%d", col, len(view.Records)+1)
		if err := f.SetCellStyle(sheetName, col+"2", last, dateStyle); err != nil {
			return nil, fmt.Errorf("style dates: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(column string, rec *models.Record, raw string) any {
	switch column {
	case models.ColumnDate:
		return rec.Date
	case models.ColumnSales:
		return rec.Sales.InexactFloat64()
	case models.ColumnRating:
		return rec.Rating.InexactFloat64()
	case models.ColumnGrossIncome:
		return rec.GrossIncome.InexactFloat64()
	default:
		return raw
	}
}
