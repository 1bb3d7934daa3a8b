package store

import (
	"github.com/kart-io/brokergpt/internal/model"
)

// CarrierAcceptsProfile reports whether a carrier's declared risk appetite
// admits the given profile. A carrier is rejected when it declares acceptable
// industries that exclude the requested industry, or declares a maximum
// company size smaller than the requested size. Absent declarations never
// reject.
//
// Both the primary store (which filters the full carrier table in application
// code) and the fallback store call this one predicate, so the two backends
// cannot disagree on a carrier.
func CarrierAcceptsProfile(c *model.Carrier, q RiskProfileQuery) bool {
	if q.Industry != "" {
		if industries := c.AcceptedIndustries(); len(industries) > 0 {
			found := false
			for _, ind := range industries {
				if ind == q.Industry {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	if q.CompanySize > 0 {
		if max, ok := c.MaxCompanySize(); ok && max < q.CompanySize {
			return false
		}
	}

	return true
}

// FilterCarriersByProfile applies CarrierAcceptsProfile over a slice.
func FilterCarriersByProfile(carriers []*model.Carrier, q RiskProfileQuery) []*model.Carrier {
	matched := make([]*model.Carrier, 0, len(carriers))
	for _, c := range carriers {
		if CarrierAcceptsProfile(c, q) {
			matched = append(matched, c)
		}
	}
	return matched
}
