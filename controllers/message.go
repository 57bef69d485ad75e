package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/V-a-m-c/TeleHealth/db"
	"github.com/V-a-m-c/TeleHealth/models"
	"github.com/V-a-m-c/TeleHealth/utils"
)

// SubmitMessage stores a contact-form submission. The sender's role is
// stamped from the token, never taken from the body.
func SubmitMessage(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)

	var message models.Message
	if err := c.BodyParser(&message); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := message.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid message",
			Error:   err.Error(),
		})
	}

	message.Role = role
	message.Timestamp = time.Now()
	if err := db.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to store message",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetMessages returns contact messages for the admin inbox, optionally
// filtered by sender role (all, patient or doctor).
func GetMessages(c *fiber.Ctx) error {
	filter := c.Query("role", "all")

	var messages []models.Message
	if err := db.DB.Order("timestamp DESC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch messages",
			Error:   err.Error(),
		})
	}
	return c.JSON(models.FilterMessagesByRole(messages, filter))
}

// DeleteMessage removes a message from the admin inbox.
func DeleteMessage(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.Message{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete message",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
