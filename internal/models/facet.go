package models

import "slices"

// Facet is a categorical column users can filter on.
type Facet string

const (
	FacetCity         Facet = "city"
	FacetCustomerType Facet = "customer_type"
	FacetProductLine  Facet = "product_line"
)

// Facets is the fixed facet order used by widgets and reports.
var Facets = []Facet{FacetCity, FacetCustomerType, FacetProductLine}

// Column returns the source column backing the facet.
func (f Facet) Column() string {
	switch f {
	case FacetCity:
		return ColumnCity
	case FacetCustomerType:
		return ColumnCustomerType
	case FacetProductLine:
		return ColumnProductLine
	default:
		return ""
	}
}

func (f Facet) Valid() bool {
	return f.Column() != ""
}

// Value returns the record's value for the facet.
func (f Facet) Value(r *Record) string {
	switch f {
	case FacetCity:
		return r.City
	case FacetCustomerType:
		return r.CustomerType
	case FacetProductLine:
		return r.ProductLine
	default:
		return ""
	}
}

// FacetOptions maps each facet to its distinct values in first-appearance order.
type FacetOptions map[Facet][]string

// Selection holds the allowed values per facet. A facet missing from the map
// is unconstrained; a facet mapped to an empty set matches nothing.
type Selection map[Facet]map[string]struct{}

// NewSelection returns an empty selection, which constrains nothing.
func NewSelection() Selection {
	return make(Selection)
}

// Set replaces the allowed values of a facet. Calling it with no values
// selects the empty set.
func (s Selection) Set(f Facet, values ...string) Selection {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	s[f] = set
	return s
}

// Values returns the selected values of a facet in sorted order and whether
// the facet is constrained at all.
func (s Selection) Values(f Facet) ([]string, bool) {
	set, ok := s[f]
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)
	return out, true
}

// SelectAll builds the default selection: every known value of every facet.
func SelectAll(opts FacetOptions) Selection {
	sel := NewSelection()
	for _, f := range Facets {
		sel.Set(f, opts[f]...)
	}
	return sel
}
