package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/V-a-m-c/TeleHealth/models"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

func meetingKey(roomID string) string {
	return "meeting:" + roomID
}

// CacheMeeting stores a meeting by room ID so the video page can resolve
// its metadata without a DB round trip. The entry lives for the meeting's
// grace window and is only a cache; the DB stays the source of truth.
func CacheMeeting(m *models.Meeting) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	ttl := time.Until(time.UnixMilli(m.ScheduledTime).Add(models.MeetingGrace))
	if ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, meetingKey(m.RoomID), data, ttl).Err()
}

// GetCachedMeeting returns the cached meeting for roomID, or nil on a miss.
func GetCachedMeeting(roomID string) (*models.Meeting, error) {
	data, err := Client.Get(Ctx, meetingKey(roomID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m models.Meeting
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DropMeeting removes the cache entry for roomID. Dropping a missing entry
// is a no-op.
func DropMeeting(roomID string) error {
	return Client.Del(Ctx, meetingKey(roomID)).Err()
}
