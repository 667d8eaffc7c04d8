package handlers

import (
	"net/url"

	"supermarket-dashboard/internal/models"
)

// selectionFromQuery reads facet constraints from query parameters named
// after the facets. Each value is its own repeated parameter, taken
// verbatim, so category names may contain commas. A parameter that is
// present but blank selects the empty set; an absent parameter leaves the
// facet unconstrained.
func selectionFromQuery(q url.Values) models.Selection {
	sel := models.NewSelection()
	for _, f := range models.Facets {
		raw, ok := q[string(f)]
		if !ok {
			continue
		}
		values := make([]string, 0, len(raw))
		for _, v := range raw {
			if v != "" {
				values = append(values, v)
			}
		}
		sel.Set(f, values...)
	}
	return sel
}

// selectionSignals mirrors the facet signals the dashboard binds. A nil
// field means the client did not send that facet.
type selectionSignals struct {
	City         *[]string `json:"city"`
	CustomerType *[]string `json:"customerType"`
	ProductLine  *[]string `json:"productLine"`
}

func (s selectionSignals) selection() models.Selection {
	sel := models.NewSelection()
	for f, vals := range map[models.Facet]*[]string{
		models.FacetCity:         s.City,
		models.FacetCustomerType: s.CustomerType,
		models.FacetProductLine:  s.ProductLine,
	} {
		if vals != nil {
			sel.Set(f, *vals...)
		}
	}
	return sel
}
