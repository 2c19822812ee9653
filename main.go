package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/database"
	"github.com/matti7866/api-sub001/app/ledger"
	"github.com/matti7866/api-sub001/app/routes/accounts"
	"github.com/matti7866/api-sub001/app/routes/auth"
	"github.com/matti7866/api-sub001/app/routes/rates"
	"github.com/matti7866/api-sub001/app/routes/reports"
	"github.com/matti7866/api-sub001/app/routes/transfers"
)

// customErrorHandler keeps every error inside the JSON envelope
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"code":    code,
	})
}

func main() {
	// Set global time zone to Gulf Standard Time
	loc, err := time.LoadLocation("Asia/Dubai")
	if err != nil {
		log.Printf("Warning: Failed to load Asia/Dubai location, falling back to UTC+4: %v", err)
		time.Local = time.FixedZone("GST", 4*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Build the transactions report aggregator once; optional sources
	// are probed here, not per request
	aggregator := ledger.NewAggregator(config.GetDB(), config.GetReportSettings())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	// Routes
	auth.SetupAuthRoutes(app)
	reports.SetupReportsRoutes(app, aggregator)
	accounts.SetupAccountsRoutes(app)
	rates.SetupRatesRoutes(app)
	transfers.SetupTransfersRoutes(app)

	log.Println("Server starting on :3000")
	if err := app.Listen(":3000"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
