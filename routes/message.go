package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/V-a-m-c/TeleHealth/controllers"
	"github.com/V-a-m-c/TeleHealth/middleware"
	"github.com/V-a-m-c/TeleHealth/models"
)

// SetupMessageRoutes configures all contact message related routes
func SetupMessageRoutes(app *fiber.App) {
	messages := app.Group("/messages", middleware.Protected())

	messages.Post("/", controllers.SubmitMessage)
	messages.Get("/", middleware.RequireRole(models.RoleAdmin), controllers.GetMessages)
	messages.Delete("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteMessage)
}
