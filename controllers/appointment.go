package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/V-a-m-c/TeleHealth/db"
	"github.com/V-a-m-c/TeleHealth/models"
	"github.com/V-a-m-c/TeleHealth/utils"
)

// ApprovedDoctor merges an approved application with the doctor's account
// profile so patients see one record per bookable doctor.
type ApprovedDoctor struct {
	models.Application `gorm:"embedded"`
	AccountName        string `json:"account_name"`
	AccountEmail       string `json:"account_email"`
}

// GetApprovedDoctors lists doctors whose applications have been approved,
// joined with their account rows.
func GetApprovedDoctors(c *fiber.Ctx) error {
	var doctors []ApprovedDoctor
	err := db.DB.Model(&models.Application{}).
		Select("applications.*, users.name AS account_name, users.email AS account_email").
		Joins("JOIN users ON users.id = applications.doctor_id").
		Where("applications.status = ?", models.ApplicationApproved).
		Scan(&doctors).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch approved doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}

// RequestAppointment creates a patient's booking request against an
// approved doctor. The status always starts pending.
func RequestAppointment(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)

	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	appointment.PatientEmail = email

	if err := appointment.ValidateRequest(time.Now()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment request",
			Error:   err.Error(),
		})
	}

	var doctor models.Application
	err := db.DB.Where("doctor_id = ? AND status = ?", appointment.DoctorID, models.ApplicationApproved).
		First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   "no approved doctor with this ID",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to look up doctor",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetDoctorAppointments lists booking requests addressed to the calling
// doctor.
func GetDoctorAppointments(c *fiber.Ctx) error {
	doctorID, _ := c.Locals("userID").(uint)

	var appointments []models.Appointment
	if err := db.DB.Where("doctor_id = ?", doctorID).Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetPatientAppointments lists the calling patient's booking requests.
func GetPatientAppointments(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)

	var appointments []models.Appointment
	if err := db.DB.Where("patient_email = ?", email).Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// SetAppointmentStatus lets the owning doctor approve or reject a pending
// appointment. The status write is unconditional; for an offline approval
// the doctor's coordinates are attached when the request carries them, and
// their absence never blocks the approval.
func SetAppointmentStatus(c *fiber.Ctx) error {
	doctorID, _ := c.Locals("userID").(uint)
	id := c.Params("id")

	type DecisionInput struct {
		Status    models.AppointmentStatus `json:"status"`
		Latitude  *float64                 `json:"latitude"`
		Longitude *float64                 `json:"longitude"`
	}
	input := new(DecisionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if !models.ValidAppointmentDecision(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid status",
			Error:   "status must be approved or rejected",
		})
	}

	var appointment models.Appointment
	err := db.DB.Where("id = ? AND doctor_id = ?", id, doctorID).First(&appointment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   "no appointment with this ID for this doctor",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointment",
			Error:   err.Error(),
		})
	}
	if appointment.Status != models.StatusPending {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Appointment already decided",
			Error:   fmt.Sprintf("status is already %s", appointment.Status),
		})
	}

	appointment.Status = input.Status
	if input.Status == models.StatusApproved &&
		appointment.Mode == models.ModeOffline &&
		input.Latitude != nil && input.Longitude != nil {
		appointment.AttachLocation(*input.Latitude, *input.Longitude)
	}

	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment status",
			Error:   err.Error(),
		})
	}

	go notifyAppointmentDecision(appointment)

	return c.JSON(appointment)
}

// notifyAppointmentDecision emails the patient about the doctor's
// decision. Failures are logged only; the status write already happened.
func notifyAppointmentDecision(appointment models.Appointment) {
	subject := fmt.Sprintf("Your appointment request was %s", appointment.Status)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment request for %s at %s has been <strong>%s</strong>.</p>
		<p>Mode: %s</p>
	`, appointment.PatientName,
		appointment.Date.Format("January 2, 2006"),
		appointment.Time,
		appointment.Status,
		appointment.Mode)

	if err := utils.SendEmail(appointment.PatientEmail, subject, body); err != nil {
		log.Printf("Failed to send decision email for appointment %d: %v", appointment.ID, err)
	}
}
