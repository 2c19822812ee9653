package rates

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/routes/auth"
)

func SetupRatesRoutes(app *fiber.App) {
	api := app.Group("/api/exchange-rates")
	api.Use(auth.AuthMiddleware)

	api.Get("/", auth.RequirePermission("exchange_rates", "select"), GetRatesAPI)
	api.Post("/", auth.RequirePermission("exchange_rates", "insert"), CreateRateAPI)
	api.Delete("/:id", auth.RequirePermission("exchange_rates", "delete"), DeactivateRateAPI)
}
