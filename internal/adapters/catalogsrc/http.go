package catalogsrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travel_reco/internal/adapters/observability"
	"travel_reco/internal/domain"
)

// maxDocumentBytes bounds the document read from a remote source.
const maxDocumentBytes = 16 << 20

// HTTP fetches the travel document with a single GET. It does not retry.
type HTTP struct {
	url string
	hc  *http.Client
}

func NewHTTP(url string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTP{url: url, hc: &http.Client{Timeout: timeout}}
}

func (c *HTTP) Name() string { return c.url }

func (c *HTTP) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Catalog{}, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	req.Header.Set("User-Agent", "travel-reco/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("catalog", "http", 0, time.Since(start))
		if ctx.Err() != nil {
			return domain.Catalog{}, ctx.Err()
		}
		return domain.Catalog{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("catalog", "http", resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.Catalog{}, fmt.Errorf("%s: %w", c.url, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.Catalog{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read body: %w", err)
	}
	return Decode(b, formatForResponse(resp, c.url))
}

// formatForResponse prefers the Content-Type and falls back to the URL path.
func formatForResponse(resp *http.Response, url string) Format {
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(ct, "yaml") {
		return FormatYAML
	}
	if strings.Contains(ct, "json") {
		return FormatJSON
	}
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return FormatFor(url)
}
