package app

import (
	"strings"

	"travel_reco/internal/domain"
)

const (
	TitleCountries = "Country Recommendations"
	TitleCities    = "City Recommendations"
	TitleTemples   = "Temple Recommendations"
	TitleBeaches   = "Beach Recommendations"

	NoMatchMessage = "No matching travel recommendations found."
)

// Literal keywords that return a whole category. These are equality checks,
// "beachfront" does not trigger the beach bypass.
var (
	beachKeywords  = map[string]bool{"beach": true, "beaches": true}
	templeKeywords = map[string]bool{"temple": true, "temples": true}
)

// Search matches keyword against the catalog, case-insensitively. The caller
// passes a trimmed, non-empty keyword. A nil catalog yields empty results.
func Search(keyword string, c *domain.Catalog) domain.Results {
	res := domain.Results{Keyword: keyword}
	if c == nil {
		return res
	}
	q := strings.ToLower(keyword)

	for _, co := range c.Countries {
		if strings.Contains(strings.ToLower(co.Name), q) {
			res.Countries = append(res.Countries, countryRecommendation(co))
		}
		for _, ci := range co.Cities {
			if containsAny(q, ci.Name, ci.Description) {
				res.Cities = append(res.Cities, cityRecommendation(ci))
			}
		}
	}

	res.Temples = matchSites(c.Temples, q, templeKeywords[q])
	res.Beaches = matchSites(c.Beaches, q, beachKeywords[q])
	return res
}

func matchSites(sites []domain.Site, q string, all bool) []domain.Recommendation {
	var out []domain.Recommendation
	for _, s := range sites {
		if all || containsAny(q, s.Name, s.Description) {
			out = append(out, siteRecommendation(s))
		}
	}
	return out
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Sections returns the non-empty categories of r in display order:
// countries, cities, temples, beaches.
func Sections(r domain.Results) []domain.Section {
	all := []domain.Section{
		{Category: domain.CategoryCountry, Title: TitleCountries, Items: r.Countries},
		{Category: domain.CategoryCity, Title: TitleCities, Items: r.Cities},
		{Category: domain.CategoryTemple, Title: TitleTemples, Items: r.Temples},
		{Category: domain.CategoryBeach, Title: TitleBeaches, Items: r.Beaches},
	}
	out := make([]domain.Section, 0, len(all))
	for _, s := range all {
		if len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// NoMatch reports whether every category came back empty.
func NoMatch(r domain.Results) bool {
	return len(r.Countries) == 0 && len(r.Cities) == 0 && len(r.Temples) == 0 && len(r.Beaches) == 0
}
