package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"travel_reco/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	for k := range map[string]bool{"HTTP_ADDR": true, "CATALOG_SOURCE": true, "CACHE_TTL_SECONDS": true, "SEARCH_RPS": true} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	c, err := shared.Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.HTTPAddr != ":8080" || c.CatalogSource != "data/travel_recommendation_api.json" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheTTL != 15*time.Minute || c.SourceTimeout != 20*time.Second {
		t.Fatalf("unexpected durations: %v %v", c.CacheTTL, c.SourceTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CATALOG_SOURCE", "mysql")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	c, err := shared.Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.HTTPAddr != ":9999" || !c.UsesMySQL() || c.CacheTTL != 30*time.Second {
		t.Fatalf("env not applied: %+v", c)
	}
	if o := c.Origins(); len(o) != 2 || o[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", o)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel.yaml")
	body := "http_addr: \":7000\"\nsearch_rps: 5\nplaceholder_base_url: https://img.example/p\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SEARCH_RPS", "7")
	os.Unsetenv("HTTP_ADDR")

	c, err := shared.Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.HTTPAddr != ":7000" || c.Placeholder != "https://img.example/p" {
		t.Fatalf("file not applied: %+v", c)
	}
	if c.SearchRPS != 7 {
		t.Fatalf("env should win over file, got %d", c.SearchRPS)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := shared.Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	c := shared.Default()
	c.SearchRPS = -1
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for negative rps")
	}
	c = shared.Default()
	c.CatalogSource = " "
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for empty source")
	}
}
