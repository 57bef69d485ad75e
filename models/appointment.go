package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusApproved AppointmentStatus = "approved"
	StatusRejected AppointmentStatus = "rejected"
)

const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)

// TimeSlots is the fixed set of bookable appointment slots.
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

type Appointment struct {
	gorm.Model
	PatientEmail string            `json:"patient_email"`
	DoctorID     uint              `json:"doctor_id"`
	PatientName  string            `json:"patient_name"`
	PatientAge   int               `json:"patient_age"`
	PatientPlace string            `json:"patient_place"`
	Mode         string            `json:"mode"`
	Date         time.Time         `json:"date"`
	Time         string            `json:"time"`
	Status       AppointmentStatus `json:"status"`
	Latitude     *float64          `json:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	// A booking request always starts pending, whatever the client sent.
	a.Status = StatusPending
	return nil
}

// ValidateRequest checks a patient's booking request against the rules a
// new appointment must satisfy: all fields present, positive age, a slot
// from the fixed enumeration and a date strictly in the future.
func (a *Appointment) ValidateRequest(now time.Time) error {
	if strings.TrimSpace(a.PatientName) == "" ||
		strings.TrimSpace(a.PatientPlace) == "" ||
		strings.TrimSpace(a.PatientEmail) == "" {
		return fmt.Errorf("all fields are required")
	}
	if a.PatientAge <= 0 {
		return fmt.Errorf("age must be a positive number")
	}
	if a.Mode != ModeOnline && a.Mode != ModeOffline {
		return fmt.Errorf("mode must be online or offline")
	}
	if !ValidTimeSlot(a.Time) {
		return fmt.Errorf("time must be one of the offered slots")
	}
	if !a.Date.After(now) {
		return fmt.Errorf("please select a future date")
	}
	return nil
}

// ValidTimeSlot reports whether slot is one of the offered booking slots.
func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ValidAppointmentDecision reports whether status is a decision a doctor
// can set on a pending appointment. Both decisions are terminal.
func ValidAppointmentDecision(status AppointmentStatus) bool {
	return status == StatusApproved || status == StatusRejected
}

// AttachLocation records the approving doctor's coordinates. The location
// is only ever attached to an offline appointment at approval time.
func (a *Appointment) AttachLocation(lat, lng float64) {
	a.Latitude = &lat
	a.Longitude = &lng
}
