package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/models"
)

const ctxCheckEvery = 1024

// dateLayouts are tried in order when normalizing the Date column.
var dateLayouts = []string{
	models.DateLayout,
	"1/2/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

type columnIndex struct {
	city, customerType, productLine, date int
	sales, rating, grossIncome, payment   int
}

// Parse reads a delimited table with a header row into a Dataset.
func Parse(ctx context.Context, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Line: 1, Err: fmt.Errorf("%w: empty input", ErrMissingColumn)}
	}
	if err != nil {
		return nil, &LoadError{Line: 1, Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, 1024)
	for line := 2; ; line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &LoadError{Line: line, Err: err}
		}

		rec, err := parseRecord(row, idx, line, header)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return &Dataset{
		columns:  header,
		records:  records,
		loadedAt: time.Now(),
	}, nil
}

func indexColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx := columnIndex{
		city:         lookup(models.ColumnCity),
		customerType: lookup(models.ColumnCustomerType),
		productLine:  lookup(models.ColumnProductLine),
		date:         lookup(models.ColumnDate),
		sales:        lookup(models.ColumnSales),
		rating:       lookup(models.ColumnRating),
		grossIncome:  lookup(models.ColumnGrossIncome),
		payment:      lookup(models.ColumnPayment),
	}
	if len(missing) > 0 {
		return idx, &LoadError{
			Line:   1,
			Column: strings.Join(missing, ", "),
			Err:    ErrMissingColumn,
		}
	}
	return idx, nil
}

func parseRecord(row []string, idx columnIndex, line int, header []string) (models.Record, error) {
	date, err := ParseDate(row[idx.date])
	if err != nil {
		return models.Record{}, &LoadError{Line: line, Column: models.ColumnDate, Err: err}
	}

	nums := [3]decimal.Decimal{}
	for i, col := range [3]int{idx.sales, idx.rating, idx.grossIncome} {
		d, err := decimal.NewFromString(strings.TrimSpace(row[col]))
		if err != nil {
			return models.Record{}, &LoadError{
				Line:   line,
				Column: header[col],
				Err:    fmt.Errorf("%w: %q", ErrBadValue, row[col]),
			}
		}
		nums[i] = d
	}

	cells := row
	cells[idx.date] = date.Format(models.DateLayout)

	return models.Record{
		City:         row[idx.city],
		CustomerType: row[idx.customerType],
		ProductLine:  row[idx.productLine],
		Date:         date,
		Sales:        nums[0],
		Rating:       nums[1],
		GrossIncome:  nums[2],
		Payment:      row[idx.payment],
		Cells:        cells,
	}, nil
}

// ParseDate normalizes a textual date to midnight UTC of that calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrBadValue, s)
}
