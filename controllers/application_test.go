package controllers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"

	"github.com/V-a-m-c/TeleHealth/db"
)

// newApplicationApp mounts GetOwnApplication behind a stub that injects the
// authenticated doctor's ID, the way the JWT middleware does in production.
func newApplicationApp(doctorID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", doctorID)
		return c.Next()
	})
	app.Get("/applications/me", GetOwnApplication)
	return app
}

func TestGetOwnApplicationMissingRowIs404(t *testing.T) {
	gdb, mock := newMockDB(t)
	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE doctor_id = \$1`).
		WithArgs(uint(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"doctor_id"}))

	app := newApplicationApp(7)
	resp, err := app.Test(httptest.NewRequest("GET", "/applications/me", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("got status %d, want 404 for a missing application", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetOwnApplicationDatabaseErrorIs500(t *testing.T) {
	gdb, mock := newMockDB(t)
	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })

	// A failed query is a server fault, not a missing record.
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE doctor_id = \$1`).
		WithArgs(uint(7), 1).
		WillReturnError(errors.New("connection reset by peer"))

	app := newApplicationApp(7)
	resp, err := app.Test(httptest.NewRequest("GET", "/applications/me", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("got status %d, want 500 for a database failure", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
