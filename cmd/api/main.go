package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"travel_reco/internal/adapters/catalogsrc"
	server "travel_reco/internal/adapters/http_server"
	"travel_reco/internal/adapters/observability"
	redisad "travel_reco/internal/adapters/redis"
	"travel_reco/internal/app"
	"travel_reco/internal/domain"
	"travel_reco/internal/shared"
	mysqlrepo "travel_reco/internal/storage/mysql"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// the catalog is loaded exactly once; a failure is served, not fatal
	ctx := context.Background()
	sess := loadSession(ctx, cfg)
	observability.ObserveCatalogLoad(sess.Err())

	// deps
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; search cache disabled")
		} else {
			cache = rc
		}
		cancel()
	}
	q := app.NewQueryService(sess, cache, cfg.CacheTTL)

	// http
	srv := server.New(server.Options{SearchRPS: cfg.SearchRPS, CORSOrigins: cfg.Origins()})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, PlaceholderBase: cfg.Placeholder})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func loadSession(ctx context.Context, cfg shared.Config) *app.Session {
	lctx, cancel := context.WithTimeout(ctx, cfg.SourceTimeout+5*time.Second)
	defer cancel()

	if !cfg.UsesMySQL() {
		src, err := catalogsrc.Open(cfg.CatalogSource, cfg.SourceTimeout)
		if err != nil {
			return app.FailedSession(&domain.LoadError{Source: cfg.CatalogSource, Err: err})
		}
		return app.NewLoader(src).Load(lctx)
	}

	// db is only needed for the one load
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error().Err(err).Msg("sql.Open failed")
		return app.FailedSession(&domain.LoadError{Source: "mysql", Err: err})
	}
	defer db.Close()
	if err := db.PingContext(lctx); err != nil {
		log.Error().Err(err).Msg("db.Ping failed")
		return app.FailedSession(&domain.LoadError{Source: "mysql", Err: err})
	}
	return app.NewLoader(mysqlrepo.New(db)).Load(lctx)
}
