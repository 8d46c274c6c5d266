package store

import (
	"testing"
	"time"
)

func TestRefuelCreateWritesOdometerReading(t *testing.T) {
	db := newTestDB(t)
	rs := NewRefuelStore(db)
	os := NewOdometerStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	now := time.Now().UTC().Truncate(time.Second)
	rf, err := rs.Create(v.ID, now, 4.5, 1500)
	if err != nil {
		t.Fatalf("create refuel: %v", err)
	}
	if rf.Quantity != 4.5 {
		t.Errorf("quantity = %v, want 4.5", rf.Quantity)
	}
	if rf.OdometerID == "" {
		t.Error("expected refuel to link an odometer reading")
	}

	reading, err := os.Latest(v.ID)
	if err != nil {
		t.Fatalf("latest reading: %v", err)
	}
	if reading == nil {
		t.Fatal("expected paired odometer reading, got nil")
	}
	if reading.ID != rf.OdometerID {
		t.Errorf("reading id = %q, want %q", reading.ID, rf.OdometerID)
	}
	if reading.Value != 1500 {
		t.Errorf("reading value = %v, want 1500", reading.Value)
	}
}

func TestRefuelLatest(t *testing.T) {
	db := newTestDB(t)
	rs := NewRefuelStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	base := time.Now().UTC().Truncate(time.Second)
	rs.Create(v.ID, base.Add(-time.Hour), 3.0, 1400)
	newer, err := rs.Create(v.ID, base, 4.0, 1500)
	if err != nil {
		t.Fatalf("create refuel: %v", err)
	}

	latest, err := rs.Latest(v.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil {
		t.Fatal("expected refuel, got nil")
	}
	if latest.ID != newer.ID {
		t.Errorf("latest id = %q, want %q", latest.ID, newer.ID)
	}
}

func TestRefuelLatestEmpty(t *testing.T) {
	db := newTestDB(t)
	rs := NewRefuelStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	latest, err := rs.Latest(v.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != nil {
		t.Error("expected nil for vehicle without refuels")
	}
}

func TestRefuelSeries(t *testing.T) {
	db := newTestDB(t)
	rs := NewRefuelStore(db)
	vs := NewVehicleStore(db)
	us := NewUserStore(db)

	u := createTestUser(t, us, "alice")
	v := createTestVehicle(t, vs, u.ID)

	base := time.Now().UTC().Truncate(time.Second)
	rs.Create(v.ID, base.Add(-3*time.Hour), 3.0, 1400)
	rs.Create(v.ID, base.Add(-2*time.Hour), 3.5, 1450)
	rs.Create(v.ID, base.Add(-1*time.Hour), 4.0, 1500)

	refuels, err := rs.Series(v.ID, base.Add(-150*time.Minute), base)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(refuels) != 2 {
		t.Fatalf("len = %d, want 2", len(refuels))
	}
	if refuels[0].Quantity != 3.5 || refuels[1].Quantity != 4.0 {
		t.Errorf("quantities = %v/%v, want 3.5/4.0", refuels[0].Quantity, refuels[1].Quantity)
	}
}
