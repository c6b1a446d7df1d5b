// Package webapi assembles the fiber application.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/moneydash/fx/infra/initializer"
	"github.com/moneydash/fx/webapi/common"
	"github.com/moneydash/fx/webapi/conversion"
)

// SetupApp builds the fiber app with middleware and routes. A failed
// conversion never crashes the process; the recover middleware turns a
// panicking handler into a 500 problem response.
func SetupApp(deps *initializer.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "fx",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(requestid.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "ok", nil)
	})

	conversion.Routes(app, deps.Conversion, deps.Settings, deps.Logger)

	return app
}
