package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// GenerateResetToken returns a single-use token for a password-reset link.
func GenerateResetToken() string {
	return uuid.NewString()
}

// GenerateKitToken signs a room token the conferencing SDK mounts with.
func GenerateKitToken(roomID, userEmail string) string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key"
	}
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%s", roomID, userEmail)
	return hex.EncodeToString(mac.Sum(nil))
}
