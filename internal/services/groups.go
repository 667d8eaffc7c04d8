package services

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/models"
)

// ByProductLine sums sales per product line, smallest first. Equal sums are
// ordered by product line name.
func ByProductLine(view *models.View) []models.ProductLineSales {
	groups := make(map[string]decimal.Decimal)
	for _, rec := range recordsOf(view) {
		groups[rec.ProductLine] = groups[rec.ProductLine].Add(rec.Sales)
	}

	result := make([]models.ProductLineSales, 0, len(groups))
	for line, sales := range groups {
		result = append(result, models.ProductLineSales{ProductLine: line, Sales: sales})
	}
	slices.SortFunc(result, func(a, b models.ProductLineSales) int {
		if c := a.Sales.Cmp(b.Sales); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductLine, b.ProductLine)
	})
	return result
}

// ByMonth sums sales per calendar month in chronological order. Months with
// no rows are absent.
func ByMonth(view *models.View) []models.MonthlySales {
	groups := make(map[models.MonthBucket]decimal.Decimal)
	for _, rec := range recordsOf(view) {
		b := models.BucketOf(rec.Date)
		groups[b] = groups[b].Add(rec.Sales)
	}

	result := make([]models.MonthlySales, 0, len(groups))
	for month, sales := range groups {
		result = append(result, models.MonthlySales{Month: month, Sales: sales})
	}
	slices.SortFunc(result, func(a, b models.MonthlySales) int {
		return a.Month.Compare(b.Month)
	})
	return result
}

// RatingByCustomerType returns every rating per customer type, in view order,
// with box plot statistics over them.
func RatingByCustomerType(view *models.View) []models.RatingDistribution {
	groups := make(map[string][]decimal.Decimal)
	for _, rec := range recordsOf(view) {
		groups[rec.CustomerType] = append(groups[rec.CustomerType], rec.Rating)
	}

	result := make([]models.RatingDistribution, 0, len(groups))
	for ct, ratings := range groups {
		result = append(result, models.RatingDistribution{
			CustomerType: ct,
			Ratings:      ratings,
			Box:          BoxPlot(ratings),
		})
	}
	slices.SortFunc(result, func(a, b models.RatingDistribution) int {
		return cmp.Compare(a.CustomerType, b.CustomerType)
	})
	return result
}

// ByPaymentMethod counts rows per payment method, most frequent first.
func ByPaymentMethod(view *models.View) []models.PaymentCount {
	counts := make(map[string]int)
	for _, rec := range recordsOf(view) {
		counts[rec.Payment]++
	}

	total := view.Len()
	result := make([]models.PaymentCount, 0, len(counts))
	for method, n := range counts {
		result = append(result, models.PaymentCount{
			Payment: method,
			Count:   n,
			Share:   float64(n) * 100 / float64(total),
		})
	}
	slices.SortFunc(result, func(a, b models.PaymentCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Payment, b.Payment)
	})
	return result
}

// BoxPlot computes quartiles by linear interpolation and 1.5*IQR whiskers.
func BoxPlot(values []decimal.Decimal) models.BoxStats {
	box := models.BoxStats{Outliers: make([]float64, 0)}
	if len(values) == 0 {
		return box
	}

	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = v.InexactFloat64()
	}
	slices.Sort(sorted)

	box.Min = sorted[0]
	box.Max = sorted[len(sorted)-1]
	box.Q1 = quantile(sorted, 0.25)
	box.Median = quantile(sorted, 0.5)
	box.Q3 = quantile(sorted, 0.75)

	iqr := box.Q3 - box.Q1
	lo, hi := box.Q1-1.5*iqr, box.Q3+1.5*iqr
	box.LowerWhisker, box.UpperWhisker = box.Q1, box.Q3
	for _, v := range sorted {
		if v < lo || v > hi {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		box.LowerWhisker = math.Min(box.LowerWhisker, v)
		box.UpperWhisker = math.Max(box.UpperWhisker, v)
	}
	return box
}

func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func recordsOf(view *models.View) []models.Record {
	if view == nil {
		return nil
	}
	return view.Records
}
