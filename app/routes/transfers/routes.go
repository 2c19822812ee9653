package transfers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/routes/auth"
)

func SetupTransfersRoutes(app *fiber.App) {
	api := app.Group("/api/transfers")
	api.Use(auth.AuthMiddleware)

	api.Get("/", auth.RequirePermission("transfers", "select"), GetTransfersAPI)
	api.Post("/", auth.RequirePermission("transfers", "insert"), CreateTransferAPI)
	api.Delete("/:id", auth.RequirePermission("transfers", "delete"), DeleteTransferAPI)
}
