package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chirag14252/challan-app/internal/config"
	"github.com/chirag14252/challan-app/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; everything with behavior lives in the service layer.
func RegisterRoutes(app *fiber.App, cfg *config.AppConfig, svc service.ChallanService) {
	maxUploadBytes := int64(cfg.MaxUploadMB) << 20

	// Review page
	app.Get("/", Index())

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Readiness: configuration of the upstream dependencies
	app.Get("/health", HealthCheck(cfg))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	// Photo in, extracted document out
	app.Post("/extract", ExtractChallan(svc, maxUploadBytes))

	// Reviewed document in, rows appended to the sheet
	app.Post("/submit", SubmitChallan(svc))

	// Reviewed document in, XLSX workbook out
	app.Post("/export", ExportChallan(svc))

	// Model ids usable with the configured credential
	app.Get("/models", ListModels(svc))

	// Credential check
	app.Post("/apikey/test", TestAPIKey(svc))
}
