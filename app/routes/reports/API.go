package reports

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/ledger"
	"github.com/matti7866/api-sub001/app/models"
)

// TransactionsReportAPI generates the unified accounts transactions
// report. Query params: from_date, to_date (YYYY-MM-DD), account_id,
// type (category or subtype tag).
func TransactionsReportAPI(c *fiber.Ctx, agg *ledger.Aggregator) error {
	settings := config.GetReportSettings()

	filter, err := parseFilter(c, settings.ResetDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	report, err := agg.GenerateReport(c.Context(), *filter)
	if err != nil {
		log.Printf("Transactions report failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to generate report"})
	}

	return c.JSON(ledger.FormatReport(report, settings.ReferenceCurrencyName))
}

func parseFilter(c *fiber.Ctx, resetDate time.Time) (*models.ReportFilter, error) {
	filter := &models.ReportFilter{
		FromDate: resetDate,
		ToDate:   time.Now(),
	}

	if v := c.Query("from_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fiber.NewError(400, "Invalid from_date, expected YYYY-MM-DD")
		}
		filter.FromDate = d
	}
	if v := c.Query("to_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fiber.NewError(400, "Invalid to_date, expected YYYY-MM-DD")
		}
		filter.ToDate = d
	}
	if filter.ToDate.Before(filter.FromDate) {
		return nil, fiber.NewError(400, "to_date must not precede from_date")
	}

	if v := c.Query("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, fiber.NewError(400, "Invalid account_id")
		}
		filter.AccountID = &id
	}

	if v := c.Query("type"); v != "" {
		if !ledger.ValidTypeFilter(v) {
			return nil, fiber.NewError(400, "Unknown type filter: "+v)
		}
		filter.Type = v
	}

	return filter, nil
}
