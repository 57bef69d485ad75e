package utils

import (
	"testing"
)

func TestGenerateResetTokenIsUnique(t *testing.T) {
	a := GenerateResetToken()
	b := GenerateResetToken()
	if a == "" || a == b {
		t.Fatalf("reset tokens should be unique, got %q and %q", a, b)
	}
}

func TestGenerateKitTokenIsStablePerRoomAndUser(t *testing.T) {
	a := GenerateKitToken("room-a", "rao@example.com")
	if a != GenerateKitToken("room-a", "rao@example.com") {
		t.Fatal("same room and user should get the same token")
	}
	if a == GenerateKitToken("room-b", "rao@example.com") {
		t.Fatal("different rooms should get different tokens")
	}
	if a == GenerateKitToken("room-a", "anil@example.com") {
		t.Fatal("different users should get different tokens")
	}
}
