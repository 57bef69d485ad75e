package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Message is a contact-form submission. Role is stamped from the sender's
// account so the admin inbox can be filtered by audience.
type Message struct {
	gorm.Model
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks that every text field of the submission is non-empty.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" ||
		strings.TrimSpace(m.Email) == "" ||
		strings.TrimSpace(m.Message) == "" {
		return fmt.Errorf("all fields are required")
	}
	return nil
}

// FilterMessagesByRole narrows messages to the given audience. "all" or an
// empty filter returns the slice unchanged.
func FilterMessagesByRole(messages []Message, filter string) []Message {
	if filter == "" || filter == "all" {
		return messages
	}
	filtered := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == filter {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
