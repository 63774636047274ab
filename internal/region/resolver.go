// Package region resolves free-text locations to canonical region keys and
// supplies per-region agronomic baselines.
package region

import "strings"

// DefaultKey is the catch-all region used when a location matches nothing.
const DefaultKey = "default"

// Resolver maps free-text location strings (cities, states, countries) to
// canonical country-level region keys. Resolution never fails; the worst
// case is the "default" key.
type Resolver struct {
	locations []locationMapping
	countries []string
}

// locationMapping ties one known sub-national or city substring to the
// country whose defaults apply. Table order is match priority: resolution
// walks it top to bottom, so a location matching two entries ("Paris,
// Texas") resolves the same way on every call.
type locationMapping struct {
	substring string
	country   string
}

// NewResolver builds the resolver over the built-in location tables.
func NewResolver() *Resolver {
	return &Resolver{
		locations: locationTable,
		countries: countryKeys,
	}
}

// Resolve returns the region key for a raw location string. Specific
// sub-national mappings are checked before country-name substrings, so
// "Mumbai, India Gate Road" resolves via "mumbai" rather than whatever a
// broader substring might hit first.
func (r *Resolver) Resolve(raw string) string {
	lower := strings.ToLower(raw)

	for _, m := range r.locations {
		if strings.Contains(lower, m.substring) {
			return m.country
		}
	}

	for _, country := range r.countries {
		if strings.Contains(lower, strings.ToLower(country)) {
			return country
		}
	}

	return DefaultKey
}

// countryKeys are the regions with dedicated defaults, checked as direct
// substrings after the specific-location table.
var countryKeys = []string{
	"India", "USA", "China", "Brazil", "Australia", "Canada", "Russia",
}

// locationTable maps known sub-national locations and cities to the
// country whose defaults apply, in match-priority order. Entries mapping to
// "default" mark places we recognize but have no dedicated table for.
var locationTable = []locationMapping{
	{"mangalore", "India"},
	{"bangalore", "India"},
	{"mumbai", "India"},
	{"delhi", "India"},
	{"kolkata", "India"},
	{"chennai", "India"},
	{"hyderabad", "India"},
	{"pune", "India"},
	{"goa", "India"},
	{"kerala", "India"},
	{"karnataka", "India"},
	{"gujarat", "India"},
	{"maharashtra", "India"},
	{"punjab", "India"},
	{"haryana", "India"},
	{"uttar pradesh", "India"},
	{"rajasthan", "India"},
	{"bihar", "India"},
	{"west bengal", "India"},
	{"assam", "India"},
	{"odisha", "India"},

	{"california", "USA"},
	{"texas", "USA"},
	{"florida", "USA"},
	{"new york", "USA"},
	{"iowa", "USA"},
	{"illinois", "USA"},
	{"kansas", "USA"},
	{"nebraska", "USA"},

	{"beijing", "China"},
	{"shanghai", "China"},
	{"guangzhou", "China"},

	{"sao paulo", "Brazil"},
	{"rio de janeiro", "Brazil"},

	{"sydney", "Australia"},
	{"melbourne", "Australia"},

	{"toronto", "Canada"},
	{"vancouver", "Canada"},

	{"moscow", "Russia"},

	// Recognized but without dedicated defaults.
	{"paris", DefaultKey},
	{"london", DefaultKey},
}
