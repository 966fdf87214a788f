package shared

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string `koanf:"app_env"`
	LogLevel       string `koanf:"log_level"`
	HTTPAddr       string `koanf:"http_addr"`
	MetricsAddr    string `koanf:"metrics_addr"`
	CatalogSource  string `koanf:"catalog_source"`
	IngestSource   string `koanf:"ingest_source"`
	MySQLDSN       string `koanf:"mysql_dsn"`
	RedisAddr      string `koanf:"redis_addr"`
	RedisDB        int    `koanf:"redis_db"`
	RedisPass      string `koanf:"redis_password"`
	Placeholder    string `koanf:"placeholder_base_url"`
	CORSOrigins    string `koanf:"cors_origins"`
	SearchRPS      int    `koanf:"search_rps"`
	CacheTTLSec    int    `koanf:"cache_ttl_seconds"`
	SourceTimeoutS int    `koanf:"source_timeout_seconds"`

	CacheTTL      time.Duration `koanf:"-"`
	SourceTimeout time.Duration `koanf:"-"`
}

// envKeys are the environment variables Load reads; others are ignored.
var envKeys = map[string]bool{
	"APP_ENV": true, "LOG_LEVEL": true, "HTTP_ADDR": true, "METRICS_ADDR": true,
	"CATALOG_SOURCE": true, "INGEST_SOURCE": true, "MYSQL_DSN": true, "REDIS_ADDR": true, "REDIS_DB": true,
	"REDIS_PASSWORD": true, "PLACEHOLDER_BASE_URL": true, "CORS_ORIGINS": true,
	"SEARCH_RPS": true, "CACHE_TTL_SECONDS": true, "SOURCE_TIMEOUT_SECONDS": true,
}

func Default() Config {
	return Config{
		AppEnv:         "prod",
		LogLevel:       "info",
		HTTPAddr:       ":8080",
		MetricsAddr:    "",
		CatalogSource:  "data/travel_recommendation_api.json",
		MySQLDSN:       "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		Placeholder:    "https://via.placeholder.com/300x200",
		CORSOrigins:    "*",
		SearchRPS:      50,
		CacheTTLSec:    900,
		SourceTimeoutS: 20,
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if set), then environment variables.
func Load() (Config, error) {
	k := koanf.New(".")
	c := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		if !envKeys[s] {
			return ""
		}
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	c.CacheTTL = time.Duration(c.CacheTTLSec) * time.Second
	c.SourceTimeout = time.Duration(c.SourceTimeoutS) * time.Second

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty; search cache disabled")
	}
	return c, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.CatalogSource) == "" {
		return fmt.Errorf("catalog_source is required")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr is required")
	}
	if c.SearchRPS < 0 {
		return fmt.Errorf("search_rps must be non-negative")
	}
	if c.CacheTTLSec < 0 {
		return fmt.Errorf("cache_ttl_seconds must be non-negative")
	}
	if c.SourceTimeoutS < 0 {
		return fmt.Errorf("source_timeout_seconds must be non-negative")
	}
	return nil
}

// Origins splits CORS_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// UsesMySQL reports whether the catalog is read from the MySQL store.
func (c Config) UsesMySQL() bool { return strings.EqualFold(strings.TrimSpace(c.CatalogSource), "mysql") }
