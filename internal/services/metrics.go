package services

import (
	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/models"
)

// Summarize computes the headline metrics. An empty view leaves
// AverageRating invalid instead of reporting zero.
func Summarize(view *models.View) models.Summary {
	s := models.Summary{
		TotalSales:  decimal.Zero,
		GrossIncome: decimal.Zero,
	}
	if view.Empty() {
		return s
	}

	ratingSum := decimal.Zero
	for _, rec := range view.Records {
		s.TotalSales = s.TotalSales.Add(rec.Sales)
		s.GrossIncome = s.GrossIncome.Add(rec.GrossIncome)
		ratingSum = ratingSum.Add(rec.Rating)
	}
	s.Rows = len(view.Records)
	s.AverageRating = decimal.NewNullDecimal(ratingSum.Div(decimal.NewFromInt(int64(s.Rows))))
	return s
}
