package models

import (
	"testing"
)

func TestSignupRoles(t *testing.T) {
	if !ValidSignupRole(RolePatient) || !ValidSignupRole(RoleDoctor) {
		t.Fatal("patient and doctor must be valid signup roles")
	}
	// Admin accounts are seeded out of band; signup must not mint one.
	if ValidSignupRole(RoleAdmin) {
		t.Fatal("admin must not be a self-service signup role")
	}
	if ValidSignupRole("superuser") || ValidSignupRole("") {
		t.Fatal("unknown roles must be rejected")
	}
}
