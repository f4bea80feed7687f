package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"cvdoc/internal/http/middleware"
	"cvdoc/internal/service"
)

// RouteConfig tunes the render routes.
type RouteConfig struct {
	// RenderConcurrency caps simultaneous export/publish requests; 0 disables the cap.
	RenderConcurrency int
	RenderWait        time.Duration
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.CVService, cfg RouteConfig) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/templates", ListTemplates(svc))
	app.Get("/templates/:id", GetTemplate(svc))

	app.Get("/cvs", ListCVs(svc))
	app.Post("/cvs", CreateCV(svc))
	app.Get("/cvs/:id", GetCV(svc))
	app.Delete("/cvs/:id", DeleteCV(svc))
	app.Post("/cvs/:id/duplicate", DuplicateCV(svc))
	app.Get("/cvs/:id/fields", ExtractCVFields(svc))
	app.Patch("/cvs/:id/fields", UpdateCVFields(svc))
	app.Put("/cvs/:id/document", UpdateCVDocument(svc))
	app.Get("/cvs/:id/analysis", AnalyzeCV(svc))
	app.Post("/cvs/:id/translate", TranslateCV(svc))

	// One limiter shared by every route that renders.
	limit := middleware.ConcurrencyLimit(cfg.RenderConcurrency, cfg.RenderWait)
	app.Get("/cvs/:id/export", limit, ExportCV(svc))
	app.Post("/cvs/:id/publish", limit, PublishCV(svc))
	app.Get("/cvs/:id/exports", ListCVExports(svc))
	app.Get("/cvs/:id/exports/:exportId", DownloadCVExport(svc))
}
