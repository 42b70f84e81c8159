package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chirag14252/challan-app/internal/archive"
	"github.com/chirag14252/challan-app/internal/config"
	handlers "github.com/chirag14252/challan-app/internal/http/handler"
	"github.com/chirag14252/challan-app/internal/http/middleware"
	"github.com/chirag14252/challan-app/internal/otel"
	"github.com/chirag14252/challan-app/internal/service"
	"github.com/chirag14252/challan-app/internal/sheets"
	"github.com/chirag14252/challan-app/internal/vision"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Tracing is optional; Init degrades to a noop provider when the
	// collector is unreachable or the SDK is disabled
	shutdownTracing, err := otel.Init(context.Background(), time.Local)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	extractor := vision.NewClient(vision.Config{
		APIKey:  cfg.Gemini.APIKey,
		BaseURL: cfg.Gemini.BaseURL,
		Model:   cfg.Gemini.Model,
		Timeout: time.Duration(cfg.Gemini.TimeoutSec) * time.Second,
	}, logger)

	submitter := sheets.NewClient(sheets.Config{
		ScriptURL: cfg.Sheets.ScriptURL,
		Secret:    cfg.Sheets.SecretKey,
		Timeout:   time.Duration(cfg.Sheets.TimeoutSec) * time.Second,
	}, logger)

	// Photo archiving is optional: without a MinIO endpoint extractions
	// still work, the response just has no review link
	var photos archive.Store
	if cfg.ArchiveEnabled() {
		photos, err = archive.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize photo archive: %v", err)
		}
	}

	svc := service.NewChallanService(extractor, submitter, photos, cfg.EnhanceUploads, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    (cfg.MaxUploadMB + 1) << 20, // handler enforces the exact photo cap
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, cfg, svc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
