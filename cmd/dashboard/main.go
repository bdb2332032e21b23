package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/gateway"
	"finance-tracker/internal/handler"
	"finance-tracker/internal/logger"
	"finance-tracker/internal/usecase"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if err := cfg.ValidateServer(); err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	financeUseCase := usecase.NewFinanceUseCase(gateway.NewCSVTransactionReader(), log)

	var publisher usecase.DocumentWriter
	if cfg.SheetsEnabled() {
		w, err := newSheetsWriter(ctx, cfg, log)
		if err != nil {
			log.Error("Failed to initialize Google Sheets publisher", "error", err)
			os.Exit(1)
		}
		publisher = w
		log.Info("Google Sheets publishing enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	gin.SetMode(gin.ReleaseMode)
	reportHandler := handler.NewReportHandler(financeUseCase, publisher, cfg.MaxUploadSizeBytes, log)
	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, reportHandler, log)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting dashboard server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server error", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped gracefully")
}

func newSheetsWriter(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gateway.SheetsDocumentWriter, error) {
	creds, err := cfg.SheetsCredentials()
	if err != nil {
		return nil, err
	}
	log.DebugContext(ctx, "Loaded service account credentials", "size", len(creds))
	return gateway.NewSheetsDocumentWriter(ctx, cfg.GoogleSpreadsheetID, log, gateway.SheetsCredentials(creds)...)
}
