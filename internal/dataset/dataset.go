package dataset

import (
	"iter"
	"slices"
	"time"

	"supermarket-dashboard/internal/models"
)

// Dataset is the immutable, ordered table every pipeline call reads from.
type Dataset struct {
	columns  []string
	records  []models.Record
	source   string
	loadedAt time.Time
}

// New builds a dataset from already-typed records. A nil columns slice
// defaults to models.RequiredColumns. Records without Cells get cells
// rendered from their typed fields.
func New(columns []string, records []models.Record) *Dataset {
	if columns == nil {
		columns = models.RequiredColumns
	}
	cols := slices.Clone(columns)
	recs := make([]models.Record, len(records))
	for i, r := range records {
		if r.Cells == nil {
			r.Cells = renderCells(cols, &r)
		} else {
			r.Cells = slices.Clone(r.Cells)
		}
		recs[i] = r
	}
	return &Dataset{
		columns:  cols,
		records:  recs,
		loadedAt: time.Now(),
	}
}

func (d *Dataset) Columns() []string {
	return slices.Clone(d.columns)
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns a copy of the i-th record.
func (d *Dataset) At(i int) models.Record {
	return d.records[i]
}

// All yields the records in order. Yielded values are copies.
func (d *Dataset) All() iter.Seq2[int, models.Record] {
	return func(yield func(int, models.Record) bool) {
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a shallow copy of the record slice.
func (d *Dataset) Records() []models.Record {
	return slices.Clone(d.records)
}

// View returns the whole dataset as an unfiltered view.
func (d *Dataset) View() *models.View {
	return &models.View{Columns: d.Columns(), Records: d.Records()}
}

func (d *Dataset) Source() string {
	return d.source
}

func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

func renderCells(columns []string, r *models.Record) []string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		switch c {
		case models.ColumnCity:
			cells[i] = r.City
		case models.ColumnCustomerType:
			cells[i] = r.CustomerType
		case models.ColumnProductLine:
			cells[i] = r.ProductLine
		case models.ColumnDate:
			cells[i] = r.Date.Format(models.DateLayout)
		case models.ColumnSales:
			cells[i] = r.Sales.String()
		case models.ColumnRating:
			cells[i] = r.Rating.String()
		case models.ColumnGrossIncome:
			cells[i] = r.GrossIncome.String()
		case models.ColumnPayment:
			cells[i] = r.Payment
		}
	}
	return cells
}
