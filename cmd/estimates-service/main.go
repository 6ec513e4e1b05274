package main

import (
	"fmt"
	"os"

	"github.com/ledgewood/estimates/internal/auth"
	"github.com/ledgewood/estimates/internal/config"
	"github.com/ledgewood/estimates/internal/db"
	"github.com/ledgewood/estimates/internal/excel"
	httphandler "github.com/ledgewood/estimates/internal/http"
	"github.com/ledgewood/estimates/internal/http/middleware"
	"github.com/ledgewood/estimates/internal/logger"
	"github.com/ledgewood/estimates/internal/pdf"
	"github.com/ledgewood/estimates/internal/repository"
	"github.com/ledgewood/estimates/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	estimateRepo := repository.NewEstimateRepository(database)
	reportRepo := repository.NewReportRepository(database)

	excelGenerator := excel.NewGenerator()
	pdfGenerator := pdf.NewGenerator()

	estimateService := service.NewEstimateService(estimateRepo, excelGenerator, pdfGenerator, cfg)
	reportService := service.NewReportService(reportRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(estimateService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting estimates service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
