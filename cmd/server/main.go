// Package main initializes and starts the city portal HTTP server,
// setting up configuration, logging, the persistence gateway, the
// datastore, handlers and routing.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/cityconnect/portal/internal/config"
	"github.com/cityconnect/portal/internal/logger"
	"github.com/cityconnect/portal/internal/persistence"
	"github.com/cityconnect/portal/internal/server/handler/http"
	"github.com/cityconnect/portal/internal/store"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Pick the persistence gateway: memory-only, Postgres, or the
	// default JSON state file. State is saved after every mutation.
	var gateway persistence.Gateway
	switch {
	case options.MemoryOnly:
		zapLogger.Info("persistence disabled, state is memory-only")
	case options.DatabaseDSN != "":
		pg, err := persistence.NewPostgresGateway(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init postgres gateway", zap.Error(err))
		}
		gateway = pg
		zapLogger.Info("persisting state to postgres")
	default:
		fg := persistence.NewFileGateway(options.StateFile)
		gateway = fg
		zapLogger.Info("persisting state to file", zap.String("path", fg.Path))
	}

	// Construct the datastore; a corrupt or missing blob falls back
	// to the seeded demo dataset.
	dataStore := store.New(gateway, zapLogger)

	// Create HTTP handlers over the datastore.
	authHandler := &http.AuthHandler{AuthService: dataStore}
	catalogHandler := &http.CatalogHandler{Catalog: dataStore}
	civicHandler := &http.CivicHandler{Civic: dataStore}
	searchHandler := &http.SearchHandler{Search: dataStore}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, catalogHandler, civicHandler, searchHandler, dataStore, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
