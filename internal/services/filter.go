package services

import (
	"supermarket-dashboard/internal/dataset"
	"supermarket-dashboard/internal/models"
)

// Filter keeps the records whose value for every constrained facet is in the
// selected set. Order is preserved. An empty set on any facet yields an
// empty view.
func Filter(ds *dataset.Dataset, sel models.Selection) *models.View {
	view := &models.View{
		Columns: ds.Columns(),
		Records: make([]models.Record, 0),
	}

	type constraint struct {
		facet models.Facet
		set   map[string]struct{}
	}
	constraints := make([]constraint, 0, len(sel))
	for _, f := range models.Facets {
		set, ok := sel[f]
		if !ok {
			continue
		}
		if len(set) == 0 {
			return view
		}
		constraints = append(constraints, constraint{facet: f, set: set})
	}

	for _, rec := range ds.All() {
		pass := true
		for _, c := range constraints {
			if _, ok := c.set[c.facet.Value(&rec)]; !ok {
				pass = false
				break
			}
		}
		if pass {
			view.Records = append(view.Records, rec)
		}
	}
	return view
}
