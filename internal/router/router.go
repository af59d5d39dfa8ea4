package router

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cryptovlab/coursework-api/internal/config"
	"github.com/cryptovlab/coursework-api/internal/handler"
	"github.com/cryptovlab/coursework-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler *handler.AssignmentHandler
	SubmissionHandler *handler.SubmissionHandler
	GradingHandler    *handler.GradingHandler
	StatsHandler      *handler.StatsHandler
}

// Register wires the HTTP routes into the fiber application. Authentication
// and authorization are owned by the deployment's edge layer; the API trusts
// its caller for role checks.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	observability.RegisterMetrics()
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api.Group("/assignments"))
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions")

		// Grading routes carry static prefixes, so they register first to
		// keep them out of the /:id wildcard.
		if deps.GradingHandler != nil {
			deps.GradingHandler.Register(submissions)
		}
		deps.SubmissionHandler.Register(submissions)
	}

	if deps.StatsHandler != nil {
		deps.StatsHandler.Register(api.Group("/stats"))
	}
}
