package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/V-a-m-c/TeleHealth/db"
	"github.com/V-a-m-c/TeleHealth/models"
	"github.com/V-a-m-c/TeleHealth/redis"
)

// StartCronJobs initializes and starts the cron scheduler for the meeting
// expiry sweep
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to clear meetings past their grace window
	_, err := c.AddFunc("* * * * *", expireMeetings)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for meeting expiry")
}

// expireMeetings deletes every meeting whose grace window has passed and
// drops its cache entry. A meeting already removed by a concurrent sweep
// just matches nothing here, so the delete is a no-op.
func expireMeetings() {
	cutoff := time.Now().Add(-models.MeetingGrace).UnixMilli()

	var expired []models.Meeting
	if err := db.DB.Where("scheduled_time < ?", cutoff).Find(&expired).Error; err != nil {
		log.Printf("Error fetching expired meetings: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	for _, meeting := range expired {
		if err := db.DB.Where("id = ?", meeting.ID).Delete(&models.Meeting{}).Error; err != nil {
			log.Printf("Failed to delete expired meeting %d: %v", meeting.ID, err)
			continue
		}
		if err := redis.DropMeeting(meeting.RoomID); err != nil {
			log.Printf("Failed to drop cached meeting %s: %v", meeting.RoomID, err)
		}
		log.Printf("Expired meeting %d (room %s, scheduled %s)",
			meeting.ID, meeting.RoomID, time.UnixMilli(meeting.ScheduledTime).Format("2006-01-02 15:04"))
	}
}
