package catalogsrc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"travel_reco/internal/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder from a file extension. Anything that is not
// .yaml/.yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// wire shapes of the travel document
type document struct {
	Countries []countryDoc `json:"countries" yaml:"countries"`
	Temples   []siteDoc    `json:"temples" yaml:"temples"`
	Beaches   []siteDoc    `json:"beaches" yaml:"beaches"`
}

type countryDoc struct {
	Name   string    `json:"name" yaml:"name"`
	Cities []cityDoc `json:"cities" yaml:"cities"`
}

type cityDoc struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

type siteDoc struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
}

// Decode parses a travel document. Missing strings decode to "" and missing
// lists to empty slices.
func Decode(b []byte, f Format) (domain.Catalog, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return domain.Catalog{}, fmt.Errorf("decode %s: empty document", f)
	}
	var doc document
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(b, &doc)
	default:
		err = json.Unmarshal(b, &doc)
	}
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("decode %s: %w", f, err)
	}
	return doc.toDomain(), nil
}

func (d document) toDomain() domain.Catalog {
	c := domain.Catalog{
		Countries: make([]domain.Country, 0, len(d.Countries)),
		Temples:   toSites(d.Temples),
		Beaches:   toSites(d.Beaches),
	}
	for _, co := range d.Countries {
		cities := make([]domain.City, 0, len(co.Cities))
		for _, ci := range co.Cities {
			cities = append(cities, domain.City{Name: ci.Name, Description: ci.Description})
		}
		c.Countries = append(c.Countries, domain.Country{Name: co.Name, Cities: cities})
	}
	return c
}

func toSites(in []siteDoc) []domain.Site {
	out := make([]domain.Site, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Site{Name: s.Name, Description: s.Description, ImageURL: s.ImageURL})
	}
	return out
}
