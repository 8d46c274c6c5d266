package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ramhdi/vimana2/internal/model"
)

type RefuelStore struct {
	db *sql.DB
}

func NewRefuelStore(db *sql.DB) *RefuelStore {
	return &RefuelStore{db: db}
}

func scanRefuel(scanner interface{ Scan(...any) error }) (*model.Refuel, error) {
	var rf model.Refuel
	err := scanner.Scan(&rf.ID, &rf.VehicleID, &rf.OdometerID, &rf.Timestamp, &rf.Quantity, &rf.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rf, nil
}

const refuelCols = `id, vehicle_id, odometer_id, timestamp, refuel_quantity, created_at`

// Create inserts a refuel event together with its paired odometer reading in
// one transaction, so a refuel never exists without the reading taken at the
// pump.
func (s *RefuelStore) Create(vehicleID string, timestamp time.Time, quantity, odometerValue float64) (*model.Refuel, error) {
	refuelID := uuid.NewString()
	odometerID := uuid.NewString()
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin refuel tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO odometer (id, vehicle_id, timestamp, odometer_value, created_at) VALUES (?, ?, ?, ?, ?)`,
		odometerID, vehicleID, timestamp.UTC(), odometerValue, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert refuel odometer reading: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO refuel (`+refuelCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		refuelID, vehicleID, odometerID, timestamp.UTC(), quantity, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert refuel: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit refuel tx: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+refuelCols+` FROM refuel WHERE id = ?`, refuelID)
	return scanRefuel(row)
}

func (s *RefuelStore) Latest(vehicleID string) (*model.Refuel, error) {
	row := s.db.QueryRow(
		`SELECT `+refuelCols+` FROM refuel WHERE vehicle_id = ? ORDER BY timestamp DESC LIMIT 1`,
		vehicleID,
	)
	rf, err := scanRefuel(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest refuel: %w", err)
	}
	return rf, nil
}

// Series returns refuel events within [from, to] ordered by timestamp. Zero
// bounds are treated as open.
func (s *RefuelStore) Series(vehicleID string, from, to time.Time) ([]model.Refuel, error) {
	query := `SELECT ` + refuelCols + ` FROM refuel WHERE vehicle_id = ?`
	args := []any{vehicleID}
	if !from.IsZero() {
		query += ` AND timestamp >= ?`
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		query += ` AND timestamp <= ?`
		args = append(args, to.UTC())
	}
	query += ` ORDER BY timestamp`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("refuel series: %w", err)
	}
	defer rows.Close()

	var refuels []model.Refuel
	for rows.Next() {
		rf, err := scanRefuel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan refuel: %w", err)
		}
		refuels = append(refuels, *rf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refuels: %w", err)
	}
	return refuels, nil
}
