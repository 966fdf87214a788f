package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrCatalogUnavailable = errors.New("catalog not loaded")
)

// LoadError reports why the catalog could not be loaded from its source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string { return "load catalog from " + e.Source + ": " + e.Err.Error() }
func (e *LoadError) Unwrap() error { return e.Err }

// CatalogSource yields the catalog document. Implementations do one read per call.
type CatalogSource interface {
	Name() string
	LoadCatalog(ctx context.Context) (Catalog, error)
}

type CatalogRepository interface {
	CatalogSource
	ReplaceCatalog(ctx context.Context, c Catalog) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}
