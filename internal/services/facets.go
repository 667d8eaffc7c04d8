package services

import (
	"supermarket-dashboard/internal/dataset"
	"supermarket-dashboard/internal/models"
)

// DistinctValues returns the unique values of a facet in first-appearance order.
func DistinctValues(ds *dataset.Dataset, facet models.Facet) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, rec := range ds.All() {
		v := facet.Value(&rec)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// Catalog derives the options of every facet in a single pass.
func Catalog(ds *dataset.Dataset) models.FacetOptions {
	seen := make(map[models.Facet]map[string]struct{}, len(models.Facets))
	opts := make(models.FacetOptions, len(models.Facets))
	for _, f := range models.Facets {
		seen[f] = make(map[string]struct{})
		opts[f] = make([]string, 0)
	}

	for _, rec := range ds.All() {
		for _, f := range models.Facets {
			v := f.Value(&rec)
			if _, ok := seen[f][v]; ok {
				continue
			}
			seen[f][v] = struct{}{}
			opts[f] = append(opts[f], v)
		}
	}
	return opts
}
