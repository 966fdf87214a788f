package catalogsrc

import (
	"fmt"
	"strings"
	"time"

	"travel_reco/internal/domain"
)

// Open returns the source for a location: an http(s) URL or a local path.
func Open(location string, timeout time.Duration) (domain.CatalogSource, error) {
	loc := strings.TrimSpace(location)
	switch {
	case loc == "":
		return nil, fmt.Errorf("catalog source location is empty")
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return NewHTTP(loc, timeout), nil
	default:
		return NewFile(strings.TrimPrefix(loc, "file://")), nil
	}
}
