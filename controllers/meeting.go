package controllers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/V-a-m-c/TeleHealth/db"
	"github.com/V-a-m-c/TeleHealth/models"
	"github.com/V-a-m-c/TeleHealth/redis"
	"github.com/V-a-m-c/TeleHealth/utils"
)

// lockActiveMeetings serializes schedule writes for one doctor and returns
// the doctor's non-expired meetings. Row locks alone cannot stop a phantom
// insert when the doctor has no active rows yet, so the transaction first
// takes a per-doctor advisory lock; the FOR UPDATE read then sees every
// committed row before the conflict checks run.
func lockActiveMeetings(tx *gorm.DB, doctorEmail string, now time.Time) ([]models.Meeting, error) {
	if err := tx.Exec(`SELECT pg_advisory_xact_lock(hashtext(?))`, doctorEmail).Error; err != nil {
		return nil, err
	}

	activeSince := now.Add(-models.MeetingGrace).UnixMilli()
	var meetings []models.Meeting
	err := tx.Raw(`
		SELECT *
		FROM meetings
		WHERE doctor_email = ? AND scheduled_time >= ? AND deleted_at IS NULL
		FOR UPDATE
	`, doctorEmail, activeSince).Scan(&meetings).Error
	return meetings, err
}

// createMeetingTx runs the uniqueness and spacing checks and the insert
// under the doctor's schedule lock.
func createMeetingTx(database *gorm.DB, meeting *models.Meeting, now time.Time) error {
	return database.Transaction(func(tx *gorm.DB) error {
		existing, err := lockActiveMeetings(tx, meeting.DoctorEmail, now)
		if err != nil {
			return err
		}
		if err := models.CheckScheduleConflicts(existing, meeting.RoomID, meeting.ScheduledTime); err != nil {
			return err
		}
		return tx.Create(meeting).Error
	})
}

// rescheduleMeetingTx moves meeting id to the new slot under the doctor's
// schedule lock, re-running the spacing check against the other meetings
// sharing its room ID.
func rescheduleMeetingTx(database *gorm.DB, id, email, date, clock string, scheduled int64, now time.Time) (models.Meeting, error) {
	var meeting models.Meeting
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND doctor_email = ?", id, email).First(&meeting).Error; err != nil {
			return err
		}

		existing, err := lockActiveMeetings(tx, email, now)
		if err != nil {
			return err
		}
		if err := models.CheckRescheduleConflicts(existing, meeting.RoomID, scheduled, meeting.ID); err != nil {
			return err
		}

		meeting.Date = date
		meeting.Time = clock
		meeting.ScheduledTime = scheduled
		return tx.Save(&meeting).Error
	})
	return meeting, err
}

// GetMeetings lists meetings scoped to the caller: doctors see their own,
// patients the ones they were invited to, admins everything. Expired rows
// never show up.
func GetMeetings(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	role, _ := c.Locals("role").(string)

	activeSince := time.Now().Add(-models.MeetingGrace).UnixMilli()
	query := db.DB.Where("scheduled_time >= ?", activeSince)
	switch role {
	case models.RoleDoctor:
		query = query.Where("doctor_email = ?", email)
	case models.RolePatient:
		query = query.Where("patient_email = ?", email)
	}

	var meetings []models.Meeting
	if err := query.Find(&meetings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch meetings",
			Error:   err.Error(),
		})
	}
	return c.JSON(meetings)
}

// CreateMeeting schedules a video session for the calling doctor. The
// room-ID uniqueness and 10-minute spacing checks run in one transaction
// serialized per doctor, so two racing creates cannot both pass against a
// stale read.
func CreateMeeting(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)

	var meeting models.Meeting
	if err := c.BodyParser(&meeting); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	meeting.DoctorEmail = email
	if meeting.PatientEmail == "" {
		meeting.PatientEmail = email
	}

	if err := meeting.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid meeting",
			Error:   err.Error(),
		})
	}

	scheduled, err := models.CombineDateTime(meeting.Date, meeting.Time)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid meeting",
			Error:   err.Error(),
		})
	}
	now := time.Now()
	if !scheduled.After(now) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid meeting",
			Error:   models.ErrPastTime.Error(),
		})
	}
	meeting.ScheduledTime = scheduled.UnixMilli()

	if err := createMeetingTx(db.DB, &meeting, now); err != nil {
		if errors.Is(err, models.ErrRoomTaken) || errors.Is(err, models.ErrTooClose) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Meeting conflicts with an existing one",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create meeting",
			Error:   err.Error(),
		})
	}

	if err := redis.CacheMeeting(&meeting); err != nil {
		log.Printf("Failed to cache meeting %s: %v", meeting.RoomID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(meeting)
}

// RescheduleMeeting moves one of the calling doctor's meetings. The future
// check and the spacing check against the other meetings sharing the room
// ID run under the same per-doctor lock as create.
func RescheduleMeeting(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	id := c.Params("id")

	type RescheduleInput struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	input := new(RescheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Date == "" || input.Time == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid reschedule",
			Error:   "please select a new date and time",
		})
	}

	scheduled, err := models.CombineDateTime(input.Date, input.Time)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid reschedule",
			Error:   err.Error(),
		})
	}
	now := time.Now()
	if !scheduled.After(now) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid reschedule",
			Error:   models.ErrPastTime.Error(),
		})
	}

	meeting, err := rescheduleMeetingTx(db.DB, id, email, input.Date, input.Time, scheduled.UnixMilli(), now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Meeting not found",
				Error:   "no meeting with this ID for this doctor",
			})
		}
		if errors.Is(err, models.ErrTooClose) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Meeting conflicts with an existing one",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reschedule meeting",
			Error:   err.Error(),
		})
	}

	if err := redis.CacheMeeting(&meeting); err != nil {
		log.Printf("Failed to refresh cached meeting %s: %v", meeting.RoomID, err)
	}

	return c.JSON(meeting)
}

// JoinMeeting resolves a meeting by room ID and, once the scheduled
// instant has arrived, hands out the conferencing token and share link.
// Before that it answers "too early" without a token. The Redis entry is
// only a fast path; a miss falls back to the DB.
func JoinMeeting(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	roomID := c.Params("roomId")

	meeting, err := redis.GetCachedMeeting(roomID)
	if err != nil {
		log.Printf("Meeting cache lookup failed for %s: %v", roomID, err)
	}
	if meeting == nil {
		var stored models.Meeting
		err := db.DB.Where("room_id = ?", roomID).First(&stored).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Meeting not found",
				Error:   "this meeting no longer exists",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to fetch meeting",
				Error:   err.Error(),
			})
		}
		meeting = &stored
	}

	now := time.Now()
	if meeting.ExpiredAt(now) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Meeting not found",
			Error:   "this meeting has already ended",
		})
	}
	if !meeting.CanJoinAt(now) {
		return c.JSON(fiber.Map{
			"canJoin": false,
			"message": "This is not the meeting time yet. Please wait for the scheduled time.",
			"meeting": meeting,
		})
	}

	return c.JSON(fiber.Map{
		"canJoin":  true,
		"meeting":  meeting,
		"kitToken": utils.GenerateKitToken(roomID, email),
		"joinLink": fmt.Sprintf("%s/room/%s", os.Getenv("APP_BASE_URL"), roomID),
	})
}
