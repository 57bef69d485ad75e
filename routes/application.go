package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/V-a-m-c/TeleHealth/controllers"
	"github.com/V-a-m-c/TeleHealth/middleware"
	"github.com/V-a-m-c/TeleHealth/models"
)

// SetupApplicationRoutes configures all doctor application related routes
func SetupApplicationRoutes(app *fiber.App) {
	applications := app.Group("/applications", middleware.Protected())

	applications.Post("/", middleware.RequireRole(models.RoleDoctor), controllers.SubmitApplication)
	applications.Get("/me", middleware.RequireRole(models.RoleDoctor), controllers.GetOwnApplication)
	applications.Post("/reapply", middleware.RequireRole(models.RoleDoctor), controllers.Reapply)

	applications.Get("/", middleware.RequireRole(models.RoleAdmin), controllers.GetAllApplications)
	applications.Patch("/:id/status", middleware.RequireRole(models.RoleAdmin), controllers.SetApplicationStatus)
}
