package app

import (
	"context"
	"fmt"
	"time"

	"travel_reco/internal/domain"
)

// ImportService copies a catalog document from a source into the repository.
type ImportService struct {
	src  domain.CatalogSource
	repo domain.CatalogRepository
}

func NewImportService(src domain.CatalogSource, repo domain.CatalogRepository) *ImportService {
	return &ImportService{src: src, repo: repo}
}

// Import replaces the stored catalog with the source document and returns a
// summary of what was written.
func (s *ImportService) Import(ctx context.Context) (domain.CatalogInfo, error) {
	c, err := s.src.LoadCatalog(ctx)
	if err != nil {
		return domain.CatalogInfo{}, &domain.LoadError{Source: s.src.Name(), Err: err}
	}
	c.Normalize()
	if err := s.repo.ReplaceCatalog(ctx, c); err != nil {
		return domain.CatalogInfo{}, fmt.Errorf("replace catalog: %w", err)
	}
	info, _ := NewSession(c, s.src.Name(), time.Now()).Info()
	return info, nil
}
