package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/V-a-m-c/TeleHealth/db"
	"github.com/V-a-m-c/TeleHealth/models"
	"github.com/V-a-m-c/TeleHealth/utils"
)

// SubmitApplication handles a doctor's credential submission. The record
// is keyed by the doctor's account ID, so submitting again overwrites the
// previous application and resets it to pending.
func SubmitApplication(c *fiber.Ctx) error {
	doctorID, _ := c.Locals("userID").(uint)

	experience, err := strconv.Atoi(c.FormValue("experience"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid application",
			Error:   "experience must be a number",
		})
	}

	input := models.ApplicationInput{
		Name:          c.FormValue("name"),
		Email:         c.FormValue("email"),
		Specialty:     c.FormValue("specialty"),
		Experience:    experience,
		LicenseNumber: c.FormValue("license_number"),
		LivingPlace:   c.FormValue("living_place"),
		Languages:     c.FormValue("languages"),
	}
	if err := input.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid application",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("license_image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid application",
			Error:   "license image is required",
		})
	}
	if !models.AllowedLicenseType(fileHeader.Header.Get("Content-Type")) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid application",
			Error:   "license image must be JPEG, PNG or GIF",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid application",
			Error:   "could not read license image",
		})
	}
	defer file.Close()

	licenseURL, err := utils.UploadLicenseImage(file, doctorID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Failed to upload license image",
			Error:   err.Error(),
		})
	}

	application := models.Application{
		DoctorID:      doctorID,
		Name:          input.Name,
		Email:         input.Email,
		Specialty:     input.Specialty,
		Experience:    input.Experience,
		LicenseNumber: input.LicenseNumber,
		LicensePicURL: licenseURL,
		LivingPlace:   input.LivingPlace,
		Languages:     input.Languages,
		Status:        models.ApplicationPending,
	}
	if err := upsertApplication(&application); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to store application",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

// upsertApplication writes the application keyed by doctor account ID,
// creating the row on first submission and overwriting it afterwards.
func upsertApplication(application *models.Application) error {
	var existing models.Application
	err := db.DB.Where("doctor_id = ?", application.DoctorID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.DB.Create(application).Error
	}
	if err != nil {
		return err
	}
	return db.DB.Model(&existing).Select("*").Omit("created_at").Updates(application).Error
}

// GetOwnApplication returns the calling doctor's application, if any.
func GetOwnApplication(c *fiber.Ctx) error {
	doctorID, _ := c.Locals("userID").(uint)

	var application models.Application
	err := db.DB.Where("doctor_id = ?", doctorID).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Application not found",
			Error:   "no application submitted for this account",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch application",
			Error:   err.Error(),
		})
	}
	return c.JSON(application)
}

// GetAllApplications returns every application for admin review.
func GetAllApplications(c *fiber.Ctx) error {
	var applications []models.Application
	if err := db.DB.Find(&applications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch applications",
			Error:   err.Error(),
		})
	}
	return c.JSON(applications)
}

// SetApplicationStatus lets an admin approve or reject an application. The
// write is an idempotent overwrite of the status field.
func SetApplicationStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusInput struct {
		Status models.ApplicationStatus `json:"status"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if !models.ValidApplicationDecision(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid status",
			Error:   "status must be approved or rejected",
		})
	}

	var application models.Application
	err := db.DB.Where("doctor_id = ?", id).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Application not found",
			Error:   "no application with this ID",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch application",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&application).Update("status", input.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update application status",
			Error:   err.Error(),
		})
	}
	application.Status = input.Status
	return c.JSON(application)
}

// Reapply blanks a doctor's application back to an empty pending record so
// a fresh submission can follow a rejection.
func Reapply(c *fiber.Ctx) error {
	doctorID, _ := c.Locals("userID").(uint)
	email, _ := c.Locals("email").(string)

	application := models.Application{DoctorID: doctorID}
	application.Blank(email)
	if err := upsertApplication(&application); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reset application",
			Error:   err.Error(),
		})
	}
	return c.JSON(application)
}
