package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jarwatch/jarwatch/internal/config"
	"github.com/jarwatch/jarwatch/internal/handler"
	"github.com/jarwatch/jarwatch/internal/integrations/monobank"
	"github.com/jarwatch/jarwatch/internal/integrations/telegram"
	"github.com/jarwatch/jarwatch/internal/service"
	"github.com/jarwatch/jarwatch/internal/utils/email"
)

const cycleTimeout = 5 * time.Minute

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load .env if present
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	bank := monobank.NewClient(cfg, logger)
	tg := telegram.NewClient(cfg, logger)
	var mail *email.Sender
	if cfg.EmailEnabled() {
		mail = email.NewSender(cfg, logger)
	}
	svc := service.NewService(cfg, bank, tg, mail, logger)
	h := handler.NewHandler(svc)

	runCycle := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
		defer cancel()
		if err := svc.RunCycle(ctx); err != nil {
			logger.Errorf("Poll cycle failed: %v", err)
		}
	}

	// Schedule poll cycles
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CronSpec, runCycle); err != nil {
		logger.Fatalf("Invalid cron spec %q: %v", cfg.CronSpec, err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Infof("Scheduled poll cycles: %s", cfg.CronSpec)

	if cfg.RunOnStart {
		go runCycle()
	}

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	r.HandleFunc("/report", h.Report).Methods("GET")
	r.HandleFunc("/chart.png", h.Chart).Methods("GET")
	r.HandleFunc("/history.png", h.HistoryChart).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
