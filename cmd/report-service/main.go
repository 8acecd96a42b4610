package main

import (
	"fmt"
	"os"

	"report-service/internal/auth"
	"report-service/internal/config"
	"report-service/internal/db"
	httphandler "report-service/internal/http"
	"report-service/internal/http/middleware"
	"report-service/internal/logger"
	"report-service/internal/notify"
	"report-service/internal/repository"
	"report-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	reportRepo := repository.NewReportRepository(database)
	sequenceRepo := repository.NewSequenceRepository(database)
	workerRepo := repository.NewWorkerRepository(database)

	mailer := notify.NewMailer(cfg.Mail, log)
	if !cfg.Mail.Configured() {
		log.Info().Msg("mail relay not configured, notifications disabled")
	}

	reportService := service.NewReportService(reportRepo, sequenceRepo, workerRepo, mailer, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(reportService, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting report service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
