package accounts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/routes/auth"
)

func SetupAccountsRoutes(app *fiber.App) {
	api := app.Group("/api/accounts")
	api.Use(auth.AuthMiddleware)

	api.Get("/", auth.RequirePermission("accounts", "select"), GetAccountsAPI)
	api.Post("/", auth.RequirePermission("accounts", "insert"), CreateAccountAPI)
	api.Put("/:id", auth.RequirePermission("accounts", "update"), UpdateAccountAPI)
	api.Delete("/:id", auth.RequirePermission("accounts", "delete"), DeleteAccountAPI)
}
