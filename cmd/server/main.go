package main

import (
	"context"
	"fmt"

	"intelplatform/internal/assistant"
	"intelplatform/internal/config"
	"intelplatform/internal/logger"
	"intelplatform/internal/server"
	"intelplatform/internal/service"
	"intelplatform/internal/store"

	httphandler "intelplatform/internal/handler/http"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("intel-platform-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying database migrations")
	}

	repositories := store.NewRepositories(db, log)

	assistantClient, err := assistant.NewClient(cfg.Assistant, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating assistant client")
	}

	services := service.NewServices(repositories, *cfg, service.NewCompletionClient(assistantClient), log)
	handler := httphandler.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
