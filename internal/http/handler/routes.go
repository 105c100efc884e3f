package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kundenstopper/docs"
	"kundenstopper/internal/http/middleware"
	"kundenstopper/internal/service"
)

// Services are the collaborators the routes dispatch to.
type Services struct {
	DB        Pinger
	Documents service.DocumentService
	Display   service.DisplayService
	Settings  service.SettingsService
	Retention service.RetentionService
	// Metrics is exposed on /metrics when set.
	Metrics prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; they translate HTTP to service calls.
func RegisterRoutes(app *fiber.App, s Services) {
	app.Get("/health", HealthCheck(s.DB))
	app.Get("/healthz", LivenessProbe())
	if s.Metrics != nil {
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(s.Metrics, promhttp.HandlerOpts{})))
	}

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Public display
	app.Get("/api/current-pdf", CurrentDocument(s.Display))
	app.Get("/uploads/:name", ServeUpload(s.Documents))

	admin := app.Group("/admin")
	admin.Get("/documents", ListDocuments(s.Documents))
	admin.Post("/documents", UploadDocument(s.Documents))
	admin.Get("/documents/:id", GetDocument(s.Documents))
	admin.Post("/documents/:id/rename", RenameDocument(s.Documents))
	admin.Delete("/documents/:id", DeleteDocument(s.Documents))
	admin.Post("/documents/:id/select", SelectDocument(s.Display))
	admin.Post("/select-newest", SelectNewest(s.Display))
	admin.Get("/settings", GetSettings(s.Settings))
	admin.Put("/settings", UpdateSettings(s.Settings))
	admin.Put("/retention", UpdateRetention(s.Settings))
	admin.Post("/retention/sweep", RunSweep(s.Retention))
}
