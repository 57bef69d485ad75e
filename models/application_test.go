package models

import (
	"testing"
)

func validApplicationInput() ApplicationInput {
	return ApplicationInput{
		Name:          "Dr. Rao",
		Email:         "rao@example.com",
		Specialty:     "Cardiology",
		Experience:    8,
		LicenseNumber: "MH-12345",
		LivingPlace:   "Mumbai",
		Languages:     "Hindi, English",
	}
}

func TestApplicationRejectsNegativeExperience(t *testing.T) {
	in := validApplicationInput()
	in.Experience = -1
	if err := in.Validate(); err == nil {
		t.Fatal("expected validation error for experience=-1")
	}
}

func TestApplicationRejectsMissingFields(t *testing.T) {
	in := validApplicationInput()
	in.Specialty = ""
	if err := in.Validate(); err == nil {
		t.Fatal("expected validation error for missing specialty")
	}
}

func TestApplicationAcceptsValidInput(t *testing.T) {
	in := validApplicationInput()
	if err := in.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	// Zero years of experience is a valid freshly-licensed doctor.
	in.Experience = 0
	if err := in.Validate(); err != nil {
		t.Fatalf("zero experience rejected: %v", err)
	}
}

func TestAllowedLicenseTypes(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/gif"} {
		if !AllowedLicenseType(ct) {
			t.Fatalf("%s should be accepted", ct)
		}
	}
	for _, ct := range []string{"application/pdf", "image/webp", ""} {
		if AllowedLicenseType(ct) {
			t.Fatalf("%s should be rejected", ct)
		}
	}
}

func TestBlankResetsRejectedApplication(t *testing.T) {
	app := Application{
		DoctorID:      7,
		Name:          "Dr. Rao",
		Email:         "rao@example.com",
		Specialty:     "Cardiology",
		Experience:    8,
		LicenseNumber: "MH-12345",
		LicensePicURL: "https://example.com/license.png",
		LivingPlace:   "Mumbai",
		Languages:     "Hindi, English",
		Status:        ApplicationRejected,
	}

	app.Blank("rao@example.com")

	if app.Status != ApplicationPending {
		t.Fatalf("re-apply should reset status to pending, got %s", app.Status)
	}
	if app.Name != "" || app.Specialty != "" || app.LicenseNumber != "" ||
		app.LicensePicURL != "" || app.LivingPlace != "" || app.Languages != "" ||
		app.Experience != 0 {
		t.Fatal("re-apply should blank all submitted fields")
	}
	if app.DoctorID != 7 || app.Email != "rao@example.com" {
		t.Fatal("re-apply should keep the account key and email")
	}
}

func TestApplicationDecisions(t *testing.T) {
	if !ValidApplicationDecision(ApplicationApproved) || !ValidApplicationDecision(ApplicationRejected) {
		t.Fatal("approved and rejected are the only valid decisions")
	}
	if ValidApplicationDecision(ApplicationPending) {
		t.Fatal("pending is not a decision an admin can set")
	}
}
