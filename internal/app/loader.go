package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/domain"
)

// Session holds the outcome of the one catalog load for the life of the
// process: either a catalog or the error that prevented it. It is written
// once before serving starts and only read afterwards.
type Session struct {
	catalog *domain.Catalog
	info    domain.CatalogInfo
	err     error
}

// NewSession wraps an already loaded catalog.
func NewSession(c domain.Catalog, source string, loadedAt time.Time) *Session {
	c.Normalize()
	return &Session{
		catalog: &c,
		info: domain.CatalogInfo{
			Version:   catalogVersion(c),
			Source:    source,
			LoadedAt:  loadedAt.UTC(),
			Countries: len(c.Countries),
			Cities:    c.CityCount(),
			Temples:   len(c.Temples),
			Beaches:   len(c.Beaches),
		},
	}
}

// FailedSession records a load failure. Searches against it find nothing.
func FailedSession(err error) *Session { return &Session{err: err} }

func (s *Session) Catalog() (*domain.Catalog, bool) { return s.catalog, s.catalog != nil }

func (s *Session) Info() (domain.CatalogInfo, bool) { return s.info, s.catalog != nil }

// Err is the load error, nil when the catalog is available.
func (s *Session) Err() error { return s.err }

type Loader struct {
	src domain.CatalogSource
	now func() time.Time
}

func NewLoader(src domain.CatalogSource) *Loader {
	return &Loader{src: src, now: time.Now}
}

// Load reads the catalog once. It never returns nil; failures are carried in
// the Session as a *domain.LoadError. There is no retry.
func (l *Loader) Load(ctx context.Context) *Session {
	start := l.now()
	c, err := l.src.LoadCatalog(ctx)
	if err != nil {
		lerr := &domain.LoadError{Source: l.src.Name(), Err: err}
		log.Error().Err(err).Str("source", l.src.Name()).Msg("catalog load failed")
		return FailedSession(lerr)
	}
	s := NewSession(c, l.src.Name(), start)
	log.Info().
		Str("source", l.src.Name()).
		Str("version", s.info.Version).
		Int("countries", s.info.Countries).
		Int("cities", s.info.Cities).
		Int("temples", s.info.Temples).
		Int("beaches", s.info.Beaches).
		Dur("duration", l.now().Sub(start)).
		Msg("catalog loaded")
	return s
}

// catalogVersion hashes the canonical JSON form, so the same document yields
// the same version whichever source it came from.
func catalogVersion(c domain.Catalog) string {
	b, err := json.Marshal(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal catalog for version")
		return ""
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
