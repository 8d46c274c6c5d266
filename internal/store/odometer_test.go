package store

import (
	"testing"
	"time"
)

func TestOdometerCreateAndLatest(t *testing.T) {
	db := newTestDB(t)
	os := NewOdometerStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	now := time.Now().UTC().Truncate(time.Second)
	if _, err := os.Create(v.ID, now.Add(-time.Hour), 1000); err != nil {
		t.Fatalf("create reading: %v", err)
	}
	newer, err := os.Create(v.ID, now, 1050)
	if err != nil {
		t.Fatalf("create reading: %v", err)
	}

	latest, err := os.Latest(v.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil {
		t.Fatal("expected reading, got nil")
	}
	if latest.ID != newer.ID {
		t.Errorf("latest id = %q, want %q", latest.ID, newer.ID)
	}
	if latest.Value != 1050 {
		t.Errorf("value = %v, want 1050", latest.Value)
	}
}

func TestOdometerLatestEmpty(t *testing.T) {
	db := newTestDB(t)
	os := NewOdometerStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	latest, err := os.Latest(v.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != nil {
		t.Error("expected nil for vehicle without readings")
	}
}

func TestOdometerSeries(t *testing.T) {
	db := newTestDB(t)
	os := NewOdometerStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	base := time.Now().UTC().Truncate(time.Second)
	os.Create(v.ID, base.Add(-3*time.Hour), 1000)
	os.Create(v.ID, base.Add(-2*time.Hour), 1020)
	os.Create(v.ID, base.Add(-1*time.Hour), 1045)

	readings, err := os.Series(v.ID, base.Add(-150*time.Minute), base)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("len = %d, want 2", len(readings))
	}
	if readings[0].Value != 1020 || readings[1].Value != 1045 {
		t.Errorf("values = %v/%v, want 1020/1045", readings[0].Value, readings[1].Value)
	}

	// Open bounds return everything, ordered by timestamp.
	all, err := os.Series(v.ID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3", len(all))
	}
}

func TestOdometerTraveled(t *testing.T) {
	db := newTestDB(t)
	os := NewOdometerStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	base := time.Now().UTC().Truncate(time.Second)
	os.Create(v.ID, base.Add(-3*time.Hour), 1000)
	os.Create(v.ID, base.Add(-2*time.Hour), 1020)
	os.Create(v.ID, base.Add(-1*time.Hour), 1045)

	distance, count, err := os.Traveled(v.ID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("traveled: %v", err)
	}
	if distance != 45 {
		t.Errorf("distance = %v, want 45", distance)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestOdometerTraveledNoReadings(t *testing.T) {
	db := newTestDB(t)
	os := NewOdometerStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	distance, count, err := os.Traveled(v.ID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("traveled: %v", err)
	}
	if distance != 0 {
		t.Errorf("distance = %v, want 0", distance)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}
