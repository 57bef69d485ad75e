package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/V-a-m-c/TeleHealth/controllers"
	"github.com/V-a-m-c/TeleHealth/middleware"
	"github.com/V-a-m-c/TeleHealth/models"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointments := app.Group("/appointments", middleware.Protected())

	appointments.Get("/doctors", controllers.GetApprovedDoctors)
	appointments.Post("/", middleware.RequireRole(models.RolePatient), controllers.RequestAppointment)
	appointments.Get("/mine", middleware.RequireRole(models.RolePatient), controllers.GetPatientAppointments)
	appointments.Get("/doctor", middleware.RequireRole(models.RoleDoctor), controllers.GetDoctorAppointments)
	appointments.Patch("/:id/status", middleware.RequireRole(models.RoleDoctor), controllers.SetAppointmentStatus)
}
