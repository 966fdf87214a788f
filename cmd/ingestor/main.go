package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"travel_reco/internal/adapters/catalogsrc"
	"travel_reco/internal/adapters/observability"
	"travel_reco/internal/app"
	"travel_reco/internal/shared"
	mysqlrepo "travel_reco/internal/storage/mysql"
)

// The ingestor copies a travel document (file or URL) into MySQL so the API
// can run with CATALOG_SOURCE=mysql.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	from := cfg.IngestSource
	if from == "" {
		from = cfg.CatalogSource
	}
	if strings.EqualFold(strings.TrimSpace(from), "mysql") {
		log.Fatal().Msg("INGEST_SOURCE must be a file path or URL, not mysql")
	}
	log.Info().Str("source", from).Msg("ingestor starting")

	src, err := catalogsrc.Open(from, cfg.SourceTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("open source failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	info, err := app.NewImportService(src, mysqlrepo.New(db)).Import(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().
		Str("version", info.Version).
		Int("countries", info.Countries).
		Int("cities", info.Cities).
		Int("temples", info.Temples).
		Int("beaches", info.Beaches).
		Msg("ingestion completed")
}
