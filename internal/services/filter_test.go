package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-dashboard/internal/models"
)

func TestDistinctValues(t *testing.T) {
	ds := scenarioDataset()

	assert.Equal(t, []string{"A", "B"}, DistinctValues(ds, models.FacetCity))
	assert.Equal(t, []string{"Member", "Normal"}, DistinctValues(ds, models.FacetCustomerType))
	assert.Equal(t, []string{"Food", "Electronics"}, DistinctValues(ds, models.FacetProductLine))
}

func TestCatalog_MatchesDistinctValues(t *testing.T) {
	ds := syntheticDataset(300)
	opts := Catalog(ds)

	for _, f := range models.Facets {
		assert.Equal(t, DistinctValues(ds, f), opts[f], "facet %s", f)
	}
	assert.Len(t, opts[models.FacetCity], len(testCities))
	assert.Len(t, opts[models.FacetProductLine], len(testLines))
}

func TestCatalog_EmptyDataset(t *testing.T) {
	opts := Catalog(syntheticDataset(0))
	for _, f := range models.Facets {
		assert.NotNil(t, opts[f])
		assert.Empty(t, opts[f])
	}
}

func TestFilter_Scenario(t *testing.T) {
	ds := scenarioDataset()
	sel := models.NewSelection().
		Set(models.FacetCity, "A").
		Set(models.FacetCustomerType, "Member", "Normal").
		Set(models.FacetProductLine, "Food", "Electronics")

	view := Filter(ds, sel)

	require.Equal(t, 2, view.Len())
	for _, rec := range view.Records {
		assert.Equal(t, "A", rec.City)
	}
	assert.Equal(t, ds.Columns(), view.Columns)
}

func TestFilter_SubsequenceAndMembership(t *testing.T) {
	ds := syntheticDataset(500)
	sel := models.NewSelection().
		Set(models.FacetCity, "Yangon", "Naypyitaw").
		Set(models.FacetProductLine, "Food and beverages", "Sports and travel", "Fashion accessories")

	view := Filter(ds, sel)
	require.False(t, view.Empty())

	// Walk the dataset once: every view record must appear in order.
	next := 0
	for _, rec := range ds.All() {
		if next < view.Len() && equalRecords(rec, view.Records[next]) {
			next++
		}
	}
	assert.Equal(t, view.Len(), next, "view is not an ordered subsequence")

	for _, rec := range view.Records {
		assert.Contains(t, sel[models.FacetCity], rec.City)
		assert.Contains(t, sel[models.FacetProductLine], rec.ProductLine)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	ds := syntheticDataset(200)
	sel := models.NewSelection().Set(models.FacetCustomerType, "Member")

	first := Filter(ds, sel)
	second := Filter(ds, sel)

	require.Equal(t, first.Len(), second.Len())
	for i := range first.Records {
		assert.True(t, equalRecords(first.Records[i], second.Records[i]), "record %d differs", i)
	}
}

func TestFilter_Monotonic(t *testing.T) {
	ds := syntheticDataset(400)
	wide := models.NewSelection().
		Set(models.FacetCity, testCities...).
		Set(models.FacetProductLine, testLines[:4]...)
	narrow := models.NewSelection().
		Set(models.FacetCity, testCities[:2]...).
		Set(models.FacetProductLine, testLines[1:3]...).
		Set(models.FacetCustomerType, "Normal")

	wideView := Filter(ds, wide)
	narrowView := Filter(ds, narrow)

	assert.LessOrEqual(t, narrowView.Len(), wideView.Len())
	for _, rec := range narrowView.Records {
		found := false
		for _, w := range wideView.Records {
			if equalRecords(rec, w) {
				found = true
				break
			}
		}
		assert.True(t, found, "narrow record missing from wide view: %+v", rec)
	}
}

func TestFilter_EmptySelectionLaw(t *testing.T) {
	ds := syntheticDataset(100)

	for _, f := range models.Facets {
		t.Run(string(f), func(t *testing.T) {
			sel := models.SelectAll(Catalog(ds)).Set(f)
			view := Filter(ds, sel)

			assert.True(t, view.Empty())
			assert.NotNil(t, view.Records)
			assert.Equal(t, ds.Columns(), view.Columns)
		})
	}
}

func TestFilter_FullSelectionIdentity(t *testing.T) {
	ds := syntheticDataset(250)

	view := Filter(ds, models.SelectAll(Catalog(ds)))

	require.Equal(t, ds.Len(), view.Len())
	for i, rec := range ds.Records() {
		assert.True(t, equalRecords(rec, view.Records[i]), "record %d differs", i)
	}
}

func TestFilter_UnconstrainedFacets(t *testing.T) {
	ds := scenarioDataset()

	assert.Equal(t, ds.Len(), Filter(ds, models.NewSelection()).Len())
	assert.Equal(t, ds.Len(), Filter(ds, nil).Len())
}

func TestFilter_UnknownValue(t *testing.T) {
	ds := scenarioDataset()
	sel := models.NewSelection().Set(models.FacetCity, "Atlantis")

	assert.True(t, Filter(ds, sel).Empty())
}

func equalRecords(a, b models.Record) bool {
	return a.City == b.City &&
		a.CustomerType == b.CustomerType &&
		a.ProductLine == b.ProductLine &&
		a.Date.Equal(b.Date) &&
		a.Sales.Equal(b.Sales) &&
		a.Rating.Equal(b.Rating) &&
		a.GrossIncome.Equal(b.GrossIncome) &&
		a.Payment == b.Payment
}

func BenchmarkFilter(b *testing.B) {
	ds := syntheticDataset(10000)
	sel := models.NewSelection().
		Set(models.FacetCity, "Yangon", "Mandalay").
		Set(models.FacetCustomerType, "Member")

	b.ResetTimer()
	for b.Loop() {
		_ = Filter(ds, sel)
	}
}
