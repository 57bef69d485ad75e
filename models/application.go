package models

import (
	"fmt"
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// AllowedLicenseTypes lists the content types accepted for a license image.
var AllowedLicenseTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Application is a doctor's credential record, keyed by the doctor's
// account id so a re-apply overwrites the previous submission.
type Application struct {
	DoctorID      uint              `json:"doctor_id" gorm:"primaryKey"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Specialty     string            `json:"specialty"`
	Experience    int               `json:"experience"`
	LicenseNumber string            `json:"license_number"`
	LicensePicURL string            `json:"license_pic_url"`
	LivingPlace   string            `json:"living_place"`
	Languages     string            `json:"languages"` // comma separated
	Status        ApplicationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ApplicationInput carries the submitted form fields before the license
// image has been uploaded.
type ApplicationInput struct {
	Name          string
	Email         string
	Specialty     string
	Experience    int
	LicenseNumber string
	LivingPlace   string
	Languages     string
}

// Validate checks the form fields of an application submission. The license
// image is validated separately by content type.
func (in *ApplicationInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Specialty) == "" ||
		strings.TrimSpace(in.LicenseNumber) == "" ||
		strings.TrimSpace(in.LivingPlace) == "" ||
		strings.TrimSpace(in.Languages) == "" {
		return fmt.Errorf("all fields are required")
	}
	if in.Experience < 0 {
		return fmt.Errorf("experience must be a non-negative number")
	}
	return nil
}

// AllowedLicenseType reports whether contentType is an accepted image type
// for the license picture.
func AllowedLicenseType(contentType string) bool {
	for _, t := range AllowedLicenseTypes {
		if contentType == t {
			return true
		}
	}
	return false
}

// ValidApplicationDecision reports whether status is a decision an admin
// can set on an application.
func ValidApplicationDecision(status ApplicationStatus) bool {
	return status == ApplicationApproved || status == ApplicationRejected
}

// Blank resets every submitted field ahead of a fresh submission, keeping
// only the account email so the doctor can re-apply after a rejection.
func (a *Application) Blank(email string) {
	a.Name = ""
	a.Email = email
	a.Specialty = ""
	a.Experience = 0
	a.LicenseNumber = ""
	a.LicensePicURL = ""
	a.LivingPlace = ""
	a.Languages = ""
	a.Status = ApplicationPending
}
