package store

import (
	"database/sql"
	"testing"

	"github.com/ramhdi/vimana2/internal/database"
	"github.com/ramhdi/vimana2/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, us *UserStore, username string) *model.User {
	t.Helper()
	u, err := us.Create(username, "$2a$10$notarealhashnotarealhashnotarea", "Test User", model.RoleStandard)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createTestVehicle(t *testing.T, vs *VehicleStore, userID string) *model.Vehicle {
	t.Helper()
	v, err := vs.Create(userID, "Honda", "Vario 160", "B 1234 XYZ", "2027-03-15")
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	return v
}
