package controllers

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/V-a-m-c/TeleHealth/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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
	return gdb, mock
}

func TestCreateMeetingLocksDoctorBeforeInsert(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Now()
	scheduled := now.Add(2 * time.Hour)

	// The per-doctor lock must be taken before the conflict read and the
	// insert; expectations are ordered, so a reordering fails the test.
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("rao@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM meetings WHERE doctor_email = \$1 AND scheduled_time >= \$2 AND deleted_at IS NULL FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time"}))
	mock.ExpectQuery(`INSERT INTO "meetings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	meeting := models.Meeting{
		RoomID:        "room-a",
		DoctorName:    "Dr. Rao",
		PatientName:   "Anil",
		DoctorEmail:   "rao@example.com",
		PatientEmail:  "anil@example.com",
		Date:          scheduled.Format("2006-01-02"),
		Time:          scheduled.Format("15:04"),
		ScheduledTime: scheduled.UnixMilli(),
	}
	if err := createMeetingTx(gdb, &meeting, now); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateMeetingRollsBackOnTakenRoom(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Now()
	scheduled := now.Add(2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("rao@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM meetings WHERE doctor_email`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time"}).
			AddRow(4, "room-a", "rao@example.com", now.Add(5*time.Hour).UnixMilli()))
	mock.ExpectRollback()

	meeting := models.Meeting{
		RoomID:        "room-a",
		DoctorName:    "Dr. Rao",
		PatientName:   "Anil",
		DoctorEmail:   "rao@example.com",
		PatientEmail:  "anil@example.com",
		Date:          scheduled.Format("2006-01-02"),
		Time:          scheduled.Format("15:04"),
		ScheduledTime: scheduled.UnixMilli(),
	}
	err := createMeetingTx(gdb, &meeting, now)
	if !errors.Is(err, models.ErrRoomTaken) {
		t.Fatalf("expected ErrRoomTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRescheduleMeetingUpdatesUnderLock(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Now()
	newSlot := now.Add(4 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "meetings" WHERE id = \$1 AND doctor_email = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time", "date", "time"}).
			AddRow(9, "room-a", "rao@example.com", now.Add(time.Hour).UnixMilli(), now.Format("2006-01-02"), "10:00"))
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("rao@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM meetings WHERE doctor_email`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time"}).
			AddRow(9, "room-a", "rao@example.com", now.Add(time.Hour).UnixMilli()).
			// A close meeting in another room is outside the reschedule scope.
			AddRow(10, "room-b", "rao@example.com", newSlot.Add(5*time.Minute).UnixMilli()))
	mock.ExpectExec(`UPDATE "meetings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	meeting, err := rescheduleMeetingTx(gdb, "9", "rao@example.com",
		newSlot.Format("2006-01-02"), newSlot.Format("15:04"), newSlot.UnixMilli(), now)
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if meeting.ScheduledTime != newSlot.UnixMilli() {
		t.Fatalf("scheduled time not updated: %d", meeting.ScheduledTime)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRescheduleMeetingRejectsCloseSameRoom(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Now()
	newSlot := now.Add(4 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "meetings" WHERE id = \$1 AND doctor_email = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time"}).
			AddRow(9, "room-a", "rao@example.com", now.Add(time.Hour).UnixMilli()))
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("rao@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM meetings WHERE doctor_email`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "doctor_email", "scheduled_time"}).
			AddRow(9, "room-a", "rao@example.com", now.Add(time.Hour).UnixMilli()).
			AddRow(11, "room-a", "rao@example.com", newSlot.Add(4*time.Minute).UnixMilli()))
	mock.ExpectRollback()

	_, err := rescheduleMeetingTx(gdb, "9", "rao@example.com",
		newSlot.Format("2006-01-02"), newSlot.Format("15:04"), newSlot.UnixMilli(), now)
	if !errors.Is(err, models.ErrTooClose) {
		t.Fatalf("expected ErrTooClose, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
