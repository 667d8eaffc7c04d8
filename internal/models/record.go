package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source column names. Case and spacing are part of the input contract.
const (
	ColumnCity         = "City"
	ColumnCustomerType = "Customer type"
	ColumnProductLine  = "Product line"
	ColumnDate         = "Date"
	ColumnSales        = "Sales"
	ColumnRating       = "Rating"
	ColumnGrossIncome  = "gross income"
	ColumnPayment      = "Payment"
)

// RequiredColumns lists the columns a dataset must carry.
var RequiredColumns = []string{
	ColumnCity,
	ColumnCustomerType,
	ColumnProductLine,
	ColumnDate,
	ColumnSales,
	ColumnRating,
	ColumnGrossIncome,
	ColumnPayment,
}

// DateLayout is the normalized textual form of Record.Date.
const DateLayout = "2006-01-02"

// Record is one transaction row. Cells holds every source cell in column
// order, with the date cell rewritten to DateLayout.
type Record struct {
	City         string
	CustomerType string
	ProductLine  string
	Date         time.Time
	Sales        decimal.Decimal
	Rating       decimal.Decimal
	GrossIncome  decimal.Decimal
	Payment      string
	Cells        []string
}

// View is the subsequence of a dataset that passed a Selection.
type View struct {
	Columns []string
	Records []Record
}

func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Records)
}

func (v *View) Empty() bool {
	return v.Len() == 0
}
