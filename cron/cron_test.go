package cron

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/V-a-m-c/TeleHealth/db"
	"github.com/V-a-m-c/TeleHealth/redis"
)

func setupSweep(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	db.DB = gdb

	// An unreachable Redis only costs a logged cache-drop failure; the
	// sweep itself must not depend on it.
	redis.Client = goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	})
	return mock
}

func TestExpireMeetingsDeletesPastGraceWindow(t *testing.T) {
	mock := setupSweep(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "meetings" WHERE scheduled_time < \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time"}).
			AddRow(5, "room-x", "rao@example.com", now.Add(-11*time.Minute).UnixMilli()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "meetings" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expireMeetings()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestExpireMeetingsRetainsLiveMeetings(t *testing.T) {
	mock := setupSweep(t)

	// Meetings inside the grace window never match the cutoff query, so
	// nothing is deleted.
	mock.ExpectQuery(`SELECT \* FROM "meetings" WHERE scheduled_time < \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time"}))

	expireMeetings()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestExpireMeetingsToleratesConcurrentDeletion(t *testing.T) {
	mock := setupSweep(t)
	now := time.Now()

	// A row removed between the read and the delete leaves the delete
	// matching nothing; the sweep treats that as a no-op.
	mock.ExpectQuery(`SELECT \* FROM "meetings" WHERE scheduled_time < \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time"}).
			AddRow(5, "room-x", "rao@example.com", now.Add(-20*time.Minute).UnixMilli()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "meetings" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	expireMeetings()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
