package rates

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/models"
)

func GetRatesAPI(c *fiber.Ctx) error {
	list, err := GetAllRates(config.GetDB())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load exchange rates"})
	}
	return c.JSON(fiber.Map{"success": true, "rates": list})
}

func CreateRateAPI(c *fiber.Ctx) error {
	var r models.ExchangeRate
	if err := c.BodyParser(&r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	settings := config.GetReportSettings()
	if r.ToCurrencyID == 0 {
		r.ToCurrencyID = settings.ReferenceCurrencyID
	}
	if r.ToCurrencyID != settings.ReferenceCurrencyID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Rates must target the reference currency"})
	}
	if !r.Rate.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Rate must be greater than zero"})
	}
	if r.FromCurrencyID == 0 || r.FromCurrencyID == r.ToCurrencyID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid currency pair"})
	}
	if r.EffectiveDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "effective_date is required"})
	}

	if err := CreateRate(config.GetDB(), &r); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create exchange rate"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "rate": r})
}

func DeactivateRateAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid rate id"})
	}

	if err := DeactivateRate(config.GetDB(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to deactivate rate"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
