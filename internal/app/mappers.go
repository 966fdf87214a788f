package app

import (
	"net/url"
	"strings"

	"travel_reco/internal/domain"
)

const DefaultPlaceholderBase = "https://via.placeholder.com/300x200"

/********** entity -> card **********/

// countryRecommendation is synthetic: countries carry no description or
// image of their own, and their cities are not included.
func countryRecommendation(c domain.Country) domain.Recommendation {
	return domain.Recommendation{Name: c.Name, Description: "Explore " + c.Name}
}

func cityRecommendation(c domain.City) domain.Recommendation {
	return domain.Recommendation{Name: c.Name, Description: c.Description}
}

func siteRecommendation(s domain.Site) domain.Recommendation {
	return domain.Recommendation{Name: s.Name, Description: s.Description, ImageURL: s.ImageURL}
}

/********** images **********/

// ImageFor returns the card image: the recommendation's own image when set,
// else a placeholder keyed by its name.
func ImageFor(r domain.Recommendation, placeholderBase string) string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return PlaceholderImage(placeholderBase, r.Name)
}

// PlaceholderImage builds "<base>?text=<name>" with the name encoded as a URI component.
func PlaceholderImage(base, name string) string {
	if base == "" {
		base = DefaultPlaceholderBase
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "text=" + encodeComponent(name)
}

// uriComponentKeep undoes QueryEscape for the marks a URI component leaves
// literal, and writes spaces as %20.
var uriComponentKeep = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return uriComponentKeep.Replace(url.QueryEscape(s))
}
