package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"cvdoc/docs"
)

// RegisterSwagger serves the Swagger UI and doc.json for host. The shared spec is filled in
// here, once, before any request can read it.
func RegisterSwagger(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	app.Get("/swagger/*", swagger.HandlerDefault)
}
