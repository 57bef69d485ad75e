package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// MinMeetingGap is the minimum separation between two meetings under the
// same doctor/room scope.
const MinMeetingGap = 10 * time.Minute

// MeetingGrace is how long after its scheduled instant a meeting stays
// alive before the expiry sweep removes it.
const MeetingGrace = 10 * time.Minute

var (
	ErrRoomTaken = errors.New("room ID already exists")
	ErrTooClose  = errors.New("meeting times should be at least 10 minutes apart")
	ErrPastTime  = errors.New("please select a future time for the meeting")
)

// Meeting is a scheduled video-conference session. ScheduledTime is the
// epoch instant in milliseconds derived from Date and Time. The partial
// unique index keeps a room ID single-use per doctor among live rows even
// if a write slips past the application-level check.
type Meeting struct {
	gorm.Model
	RoomID        string `json:"room_id" gorm:"uniqueIndex:idx_meetings_doctor_room,priority:2,where:deleted_at IS NULL"`
	DoctorName    string `json:"doctor_name"`
	PatientName   string `json:"patient_name"`
	DoctorEmail   string `json:"doctor_email" gorm:"uniqueIndex:idx_meetings_doctor_room,priority:1"`
	PatientEmail  string `json:"patient_email"`
	Date          string `json:"date"` // "2006-01-02"
	Time          string `json:"time"` // "15:04"
	ScheduledTime int64  `json:"scheduled_time"`
}

// CombineDateTime resolves a date string and a clock string into the
// meeting's scheduled epoch instant.
func CombineDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time: %w", err)
	}
	return t, nil
}

// Validate checks that every field of a new meeting is present.
func (m *Meeting) Validate() error {
	if strings.TrimSpace(m.RoomID) == "" ||
		strings.TrimSpace(m.DoctorName) == "" ||
		strings.TrimSpace(m.PatientName) == "" ||
		strings.TrimSpace(m.DoctorEmail) == "" ||
		strings.TrimSpace(m.PatientEmail) == "" ||
		strings.TrimSpace(m.Date) == "" ||
		strings.TrimSpace(m.Time) == "" {
		return fmt.Errorf("please fill in all fields")
	}
	return nil
}

// ExpiredAt reports whether the meeting's grace window has passed and the
// sweep should remove it.
func (m *Meeting) ExpiredAt(now time.Time) bool {
	return now.UnixMilli() > m.ScheduledTime+MeetingGrace.Milliseconds()
}

// CanJoinAt reports whether the meeting has reached its scheduled instant.
// Joining before it yields a "too early" answer, not a room token.
func (m *Meeting) CanJoinAt(now time.Time) bool {
	return now.UnixMilli() >= m.ScheduledTime
}

// CheckScheduleConflicts validates a new meeting at scheduled (epoch
// millis) against the doctor's existing meetings: the room ID must be
// unused and every existing meeting must be at least MinMeetingGap away.
func CheckScheduleConflicts(existing []Meeting, roomID string, scheduled int64) error {
	for i := range existing {
		if existing[i].RoomID == roomID {
			return ErrRoomTaken
		}
		if gapTooSmall(existing[i].ScheduledTime, scheduled) {
			return ErrTooClose
		}
	}
	return nil
}

// CheckRescheduleConflicts validates moving meeting selfID to scheduled
// against the other meetings sharing its room ID.
func CheckRescheduleConflicts(existing []Meeting, roomID string, scheduled int64, selfID uint) error {
	for i := range existing {
		if existing[i].ID == selfID || existing[i].RoomID != roomID {
			continue
		}
		if gapTooSmall(existing[i].ScheduledTime, scheduled) {
			return ErrTooClose
		}
	}
	return nil
}

func gapTooSmall(a, b int64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < MinMeetingGap.Milliseconds()
}
