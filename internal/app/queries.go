package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/domain"
)

type QueryService struct {
	session  *Session
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQueryService builds the read path. A nil cache disables caching.
func NewQueryService(s *Session, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{session: s, cache: c, cacheTTL: ttl}
}

func (s *QueryService) Session() *Session { return s.session }

// Search runs the keyword match against the session catalog. It returns
// domain.ErrCatalogUnavailable when the catalog failed to load.
func (s *QueryService) Search(ctx context.Context, keyword string) (domain.Results, error) {
	cat, ok := s.session.Catalog()
	if !ok {
		return domain.Results{Keyword: keyword}, domain.ErrCatalogUnavailable
	}
	if s.cache == nil {
		return Search(keyword, cat), nil
	}

	// keyed by version so a different document never reads stale entries
	key := fmt.Sprintf("search:%s:%s", s.session.info.Version, strings.ToLower(keyword))
	var out domain.Results
	ok, err := s.cache.Get(ctx, key, &out)
	if err != nil {
		// unreadable entry: recompute and overwrite it
		log.Warn().Err(err).Str("key", key).Msg("search cache read failed")
	}
	if ok && err == nil {
		out.Keyword = keyword
		return out, nil
	}
	res := Search(keyword, cat)
	_ = s.cache.Set(ctx, key, res, int(s.cacheTTL.Seconds()))
	return res, nil
}
