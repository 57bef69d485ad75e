package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/V-a-m-c/TeleHealth/controllers"
	"github.com/V-a-m-c/TeleHealth/middleware"
	"github.com/V-a-m-c/TeleHealth/models"
)

// SetupMeetingRoutes configures all meeting related routes
func SetupMeetingRoutes(app *fiber.App) {
	meetings := app.Group("/meetings", middleware.Protected())

	meetings.Get("/", controllers.GetMeetings)
	meetings.Get("/join/:roomId", controllers.JoinMeeting)
	meetings.Post("/", middleware.RequireRole(models.RoleDoctor), controllers.CreateMeeting)
	meetings.Patch("/:id", middleware.RequireRole(models.RoleDoctor), controllers.RescheduleMeeting)
}
