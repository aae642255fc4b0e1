// Package webapi exposes the security core over HTTP with fiber. The layer
// is deliberately thin: handlers bind and validate payloads, call the
// service and translate domain errors to problem-details responses.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/config"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/service/security"
)

// NewApp builds the fiber application with all routes registered.
func NewApp(deps config.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	svc := security.NewService(deps)
	ProfileRoutes(app, svc)
	CheckRoutes(app, svc)
	AutoAcceptRoutes(app, svc)

	return app
}
