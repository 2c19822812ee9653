package transfers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/models"
)

func GetTransfersAPI(c *fiber.Ctx) error {
	list, err := GetAllTransfers(config.GetDB())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load transfers"})
	}
	return c.JSON(fiber.Map{"success": true, "transfers": list})
}

func CreateTransferAPI(c *fiber.Ctx) error {
	var t models.Transfer
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	if t.FromAccountID == 0 || t.ToAccountID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Both accounts are required"})
	}
	if t.FromAccountID == t.ToAccountID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot transfer to the same account"})
	}
	if !t.Amount.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Amount must be greater than zero"})
	}
	if t.TransferDate.IsZero() {
		t.TransferDate = time.Now()
	}

	userID := c.Locals("user_id").(string)
	t.AddedBy = &userID

	if err := CreateTransfer(config.GetDB(), &t); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create transfer"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "transfer": t})
}

func DeleteTransferAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid transfer id"})
	}

	if err := DeleteTransfer(config.GetDB(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete transfer"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
