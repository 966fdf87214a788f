package app_test

import (
	"context"
	"errors"
	"testing"

	"travel_reco/internal/app"
	"travel_reco/internal/domain"
)

type fakeRepo struct {
	stored *domain.Catalog
	err    error
}

func (f *fakeRepo) Name() string { return "fake-repo" }
func (f *fakeRepo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	if f.stored == nil {
		return domain.Catalog{}, domain.ErrNotFound
	}
	return *f.stored, nil
}
func (f *fakeRepo) ReplaceCatalog(ctx context.Context, c domain.Catalog) error {
	if f.err != nil {
		return f.err
	}
	f.stored = &c
	return nil
}

func TestImport_ReplacesCatalog(t *testing.T) {
	repo := &fakeRepo{}
	src := &fakeSource{cat: domain.Catalog{Countries: []domain.Country{{Name: "Japan"}}}}

	info, err := app.NewImportService(src, repo).Import(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if info.Countries != 1 || info.Temples != 0 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if repo.stored == nil || repo.stored.Beaches == nil {
		t.Fatalf("expected normalized catalog in repo: %+v", repo.stored)
	}
}

func TestImport_SourceFailure(t *testing.T) {
	repo := &fakeRepo{}
	_, err := app.NewImportService(&fakeSource{err: errors.New("gone")}, repo).Import(context.Background())
	var lerr *domain.LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if repo.stored != nil {
		t.Fatalf("repo must be untouched on source failure")
	}
}

func TestImport_RepoFailure(t *testing.T) {
	boom := errors.New("deadlock")
	_, err := app.NewImportService(&fakeSource{cat: *sampleCatalog()}, &fakeRepo{err: boom}).Import(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
