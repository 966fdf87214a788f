package catalogsrc

import (
	"context"
	"fmt"
	"os"
	"time"

	"travel_reco/internal/adapters/observability"
	"travel_reco/internal/domain"
)

// File reads the travel document from local disk.
type File struct{ path string }

func NewFile(path string) *File { return &File{path: path} }

func (f *File) Name() string { return "file:" + f.path }

func (f *File) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}
	start := time.Now()
	b, err := os.ReadFile(f.path)
	if err != nil {
		observability.ObserveExternal("catalog", "file", 0, time.Since(start))
		if os.IsNotExist(err) {
			return domain.Catalog{}, fmt.Errorf("%s: %w", f.path, domain.ErrNotFound)
		}
		return domain.Catalog{}, err
	}
	observability.ObserveExternal("catalog", "file", 200, time.Since(start))
	return Decode(b, FormatFor(f.path))
}
