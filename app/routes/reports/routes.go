package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/ledger"
	"github.com/matti7866/api-sub001/app/routes/auth"
)

func SetupReportsRoutes(app *fiber.App, agg *ledger.Aggregator) {
	api := app.Group("/api/accounts")
	api.Use(auth.AuthMiddleware)

	api.Get("/transactions", auth.RequirePermission("accounts", "select"), func(c *fiber.Ctx) error {
		return TransactionsReportAPI(c, agg)
	})
}
