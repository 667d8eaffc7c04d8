package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Summary carries the scalar metrics of a view. AverageRating is invalid
// (JSON null) when the view has no rows.
type Summary struct {
	Rows          int                 `json:"rows"`
	TotalSales    decimal.Decimal     `json:"total_sales"`
	GrossIncome   decimal.Decimal     `json:"gross_income"`
	AverageRating decimal.NullDecimal `json:"average_rating"`
}

func (s Summary) HasData() bool {
	return s.Rows > 0
}

func (s Summary) MarshalJSON() ([]byte, error) {
	type summary Summary
	return json.Marshal(struct {
		summary
		HasData bool `json:"has_data"`
	}{summary(s), s.HasData()})
}

type ProductLineSales struct {
	ProductLine string          `json:"product_line"`
	Sales       decimal.Decimal `json:"sales"`
}

// MonthBucket identifies a calendar month, ignoring the day.
type MonthBucket struct {
	Year  int
	Month time.Month
}

func BucketOf(t time.Time) MonthBucket {
	return MonthBucket{Year: t.Year(), Month: t.Month()}
}

func (b MonthBucket) String() string {
	return fmt.Sprintf("%04d-%02d", b.Year, int(b.Month))
}

func (b MonthBucket) Compare(o MonthBucket) int {
	if b.Year != o.Year {
		if b.Year < o.Year {
			return -1
		}
		return 1
	}
	if b.Month != o.Month {
		if b.Month < o.Month {
			return -1
		}
		return 1
	}
	return 0
}

func (b MonthBucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *MonthBucket) UnmarshalText(text []byte) error {
	t, err := time.Parse("2006-01", string(text))
	if err != nil {
		return fmt.Errorf("parse month bucket %q: %w", text, err)
	}
	*b = BucketOf(t)
	return nil
}

type MonthlySales struct {
	Month MonthBucket     `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

// BoxStats summarizes a distribution the way a box plot draws it.
type BoxStats struct {
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}

type RatingDistribution struct {
	CustomerType string            `json:"customer_type"`
	Ratings      []decimal.Decimal `json:"ratings"`
	Box          BoxStats          `json:"box"`
}

type PaymentCount struct {
	Payment string  `json:"payment"`
	Count   int     `json:"count"`
	Share   float64 `json:"share"`
}

// Report bundles every derived output of one interaction.
type Report struct {
	Selection    map[Facet][]string   `json:"selection"`
	Options      FacetOptions         `json:"options"`
	Summary      Summary              `json:"summary"`
	HasData      bool                 `json:"has_data"`
	ProductLines []ProductLineSales   `json:"product_lines"`
	MonthlySales []MonthlySales       `json:"monthly_sales"`
	Ratings      []RatingDistribution `json:"ratings"`
	Payments     []PaymentCount       `json:"payments"`
	View         *View                `json:"-"`
}
