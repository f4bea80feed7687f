package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cvdoc/internal/config"
	"cvdoc/internal/database"
	"cvdoc/internal/database/migration"
	handlers "cvdoc/internal/http/handler"
	"cvdoc/internal/http/middleware"
	"cvdoc/internal/logging"
	"cvdoc/internal/otel"
	"cvdoc/internal/render"
	"cvdoc/internal/repository"
	"cvdoc/internal/repository/postgres"
	"cvdoc/internal/service"
	"cvdoc/internal/storage"
	"cvdoc/internal/templates"
	"cvdoc/internal/transform"
)

const (
	renderWait      = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	bodyLimit       = 8 << 20
)

// @title CV Document API
// @version 1.0
// @description Template-driven CV editing, rendering and publishing.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, logging.Location(cfg.TimeZone), logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "failed to initialize tracing", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", "error_message", err.Error())
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := database.RecordStats(db); err != nil {
		log.Warn("db stats disabled", "error_message", err.Error())
	}
	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "failed to migrate database", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		fatal(log, "failed to initialize object storage", err)
	}

	registry := render.NewRegistry(render.FontCandidates{
		Regular: fontSources(cfg.Render.FontRegular),
		Bold:    fontSources(cfg.Render.FontBold),
		Symbol:  fontSources(cfg.Render.FontSymbol),
	}, log.With("component", "render"))
	engine := render.NewEngine(registry,
		render.WithDensity(cfg.Render.Density),
		render.WithBitmapDPI(cfg.Render.BitmapDPI),
		render.WithTempDir(cfg.Render.TempDir),
		render.WithLogger(log),
	)

	transformer := transform.NewClient(cfg.AI.ServiceURL, cfg.AI.Timeout,
		transform.WithRetry(cfg.AI.RetryAttempts, 2*time.Second),
		transform.WithLogger(log),
	)

	var catalogue repository.TemplateRepository = postgres.NewTemplatePostgres(db)
	if cfg.TemplateSource == "embedded" {
		embedded, err := templates.NewEmbedded()
		if err != nil {
			fatal(log, "failed to load embedded templates", err)
		}
		catalogue = embedded
	}

	metrics, err := service.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		fatal(log, "failed to register service metrics", err)
	}

	// Initialize repositories and services
	cvSvc := service.NewCVService(service.Deps{
		Templates:     catalogue,
		CVs:           postgres.NewCVPostgres(db),
		Exports:       postgres.NewExportPostgres(db),
		Store:         objStore,
		Renderer:      engine,
		Transformer:   transformer,
		Metrics:       metrics,
		Logger:        log,
		PresignExpiry: cfg.MinIO.PresignExpiry,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})

	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		fatal(log, "failed to register http metrics", err)
	}

	// Register global middleware
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(promMw.Handler())
	app.Use(middleware.Recover(log))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, cvSvc, handlers.RouteConfig{
		RenderConcurrency: cfg.Render.MaxConcurrent,
		RenderWait:        renderWait,
	})

	handlers.RegisterSwagger(app, cfg.AppHost)

	go func() {
		<-ctx.Done()
		log.Info("shutting down", "event", "server_stop")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error("server shutdown failed", "error_message", err.Error())
		}
	}()

	addr := ":" + cfg.Port
	log.Info("listening", "event", "server_start", "addr", addr)
	if err := app.Listen(addr); err != nil {
		fatal(log, "failed to start server", err)
	}
}

func fontSources(paths []string) []render.FontSource {
	out := make([]render.FontSource, 0, len(paths))
	for _, p := range paths {
		out = append(out, render.FileSource(p))
	}
	return out
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error_message", err.Error())
	os.Exit(1)
}
