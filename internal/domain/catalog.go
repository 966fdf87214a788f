package domain

import "time"

// Catalog is the full travel dataset. It is built once at startup and never mutated afterwards.
type Catalog struct {
	Countries []Country `json:"countries"`
	Temples   []Site    `json:"temples"`
	Beaches   []Site    `json:"beaches"`
}

type Country struct {
	Name   string `json:"name"`
	Cities []City `json:"cities"`
}

type City struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Site is a temple or a beach. ImageURL is empty when the document has none.
type Site struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type SiteKind string

const (
	KindTemple SiteKind = "temple"
	KindBeach  SiteKind = "beach"
)

// CityCount is the number of cities across all countries.
func (c *Catalog) CityCount() int {
	n := 0
	for _, co := range c.Countries {
		n += len(co.Cities)
	}
	return n
}

// Normalize replaces nil slices with empty ones so a decoded Catalog always
// has non-nil sequences, whatever the source left out.
func (c *Catalog) Normalize() {
	if c.Countries == nil {
		c.Countries = []Country{}
	}
	for i := range c.Countries {
		if c.Countries[i].Cities == nil {
			c.Countries[i].Cities = []City{}
		}
	}
	if c.Temples == nil {
		c.Temples = []Site{}
	}
	if c.Beaches == nil {
		c.Beaches = []Site{}
	}
}

// Recommendation is one result card.
type Recommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type Category string

const (
	CategoryCountry Category = "country"
	CategoryCity    Category = "city"
	CategoryTemple  Category = "temple"
	CategoryBeach   Category = "beach"
)

// Section is a titled, non-empty list of recommendations.
type Section struct {
	Category Category         `json:"category"`
	Title    string           `json:"title"`
	Items    []Recommendation `json:"items"`
}

// Results holds the four per-category match lists for one keyword.
type Results struct {
	Keyword   string           `json:"keyword"`
	Countries []Recommendation `json:"countries"`
	Cities    []Recommendation `json:"cities"`
	Temples   []Recommendation `json:"temples"`
	Beaches   []Recommendation `json:"beaches"`
}

// CatalogInfo summarizes a loaded catalog.
type CatalogInfo struct {
	Version   string    `json:"version"`
	Source    string    `json:"source"`
	LoadedAt  time.Time `json:"loaded_at"`
	Countries int       `json:"countries"`
	Cities    int       `json:"cities"`
	Temples   int       `json:"temples"`
	Beaches   int       `json:"beaches"`
}
