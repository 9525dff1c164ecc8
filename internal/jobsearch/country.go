package jobsearch

import "strings"

// CountryRule maps location keywords to the country code the scraper's
// Indeed backend expects. Rules are checked in order; the first keyword
// contained in the lower-cased location wins.
type CountryRule struct {
	Keywords []string
	Country  string
}

const fallbackCountry = "USA"

// DefaultCountryRules returns the built-in keyword table. The table is part
// of the search stage configuration so tests and deployments can substitute
// their own mapping.
func DefaultCountryRules() []CountryRule {
	return []CountryRule{
		{Keywords: []string{"india"}, Country: "India"},
		{Keywords: []string{"uk", "united kingdom", "london"}, Country: "UK"},
		{Keywords: []string{"canada"}, Country: "Canada"},
		{Keywords: []string{"australia"}, Country: "Australia"},
		{Keywords: []string{"germany"}, Country: "Germany"},
	}
}

// DetectCountry resolves the scraper country for a location string.
func DetectCountry(rules []CountryRule, location string) string {
	lower := strings.ToLower(location)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Country
			}
		}
	}
	return fallbackCountry
}
