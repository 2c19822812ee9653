package accounts

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/models"
)

func GetAccountsAPI(c *fiber.Ctx) error {
	accounts, err := GetAllAccounts(config.GetDB())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load accounts",
		})
	}
	return c.JSON(fiber.Map{"success": true, "accounts": accounts})
}

func CreateAccountAPI(c *fiber.Ctx) error {
	var a models.Account
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	if a.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Account name is required"})
	}

	if err := CreateAccount(config.GetDB(), &a); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create account"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "account": a})
}

func UpdateAccountAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid account id"})
	}

	var a models.Account
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	a.ID = id
	if err := UpdateAccount(config.GetDB(), &a); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update account"})
	}
	return c.JSON(fiber.Map{"success": true, "account": a})
}

func DeleteAccountAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid account id"})
	}

	if id == config.GetReportSettings().ReservedAccountID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "The house account cannot be deleted"})
	}

	if err := DeleteAccount(config.GetDB(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete account"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
