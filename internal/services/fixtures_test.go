package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/dataset"
	"supermarket-dashboard/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// scenarioDataset is the three-record example used throughout the docs.
func scenarioDataset() *dataset.Dataset {
	return dataset.New(nil, []models.Record{
		{
			City: "A", CustomerType: "Member", ProductLine: "Food", Date: day(2024, 1, 15),
			Sales: dec("100"), Rating: dec("8"), GrossIncome: dec("5"), Payment: "Cash",
		},
		{
			City: "A", CustomerType: "Normal", ProductLine: "Food", Date: day(2024, 2, 10),
			Sales: dec("50"), Rating: dec("6"), GrossIncome: dec("2.5"), Payment: "Card",
		},
		{
			City: "B", CustomerType: "Member", ProductLine: "Electronics", Date: day(2024, 1, 20),
			Sales: dec("200"), Rating: dec("9"), GrossIncome: dec("20"), Payment: "Cash",
		},
	})
}

var (
	testCities    = []string{"Yangon", "Mandalay", "Naypyitaw"}
	testCustomers = []string{"Member", "Normal"}
	testLines     = []string{"Health and beauty", "Electronic accessories", "Home and lifestyle", "Sports and travel", "Food and beverages", "Fashion accessories"}
	testPayments  = []string{"Ewallet", "Cash", "Credit card"}
)

// syntheticDataset builds n deterministic records spread over every facet
// value and three months.
func syntheticDataset(n int) *dataset.Dataset {
	records := make([]models.Record, n)
	for i := range records {
		records[i] = models.Record{
			City:         testCities[i%len(testCities)],
			CustomerType: testCustomers[(i/3)%len(testCustomers)],
			ProductLine:  testLines[(i*7)%len(testLines)],
			Date:         day(2019, time.Month(1+i%3), 1+i%28),
			Sales:        dec(fmt.Sprintf("%d.%02d", 10+i%500, i%100)),
			Rating:       dec(fmt.Sprintf("%d.%d", 3+i%7, i%10)),
			GrossIncome:  dec(fmt.Sprintf("%d.%03d", i%25, i%1000)),
			Payment:      testPayments[(i*5)%len(testPayments)],
		}
	}
	return dataset.New(nil, records)
}
