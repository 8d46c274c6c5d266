package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ramhdi/vimana2/internal/model"
)

type OdometerStore struct {
	db *sql.DB
}

func NewOdometerStore(db *sql.DB) *OdometerStore {
	return &OdometerStore{db: db}
}

func scanOdometer(scanner interface{ Scan(...any) error }) (*model.OdometerReading, error) {
	var o model.OdometerReading
	err := scanner.Scan(&o.ID, &o.VehicleID, &o.Timestamp, &o.Value, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

const odometerCols = `id, vehicle_id, timestamp, odometer_value, created_at`

func (s *OdometerStore) Create(vehicleID string, timestamp time.Time, value float64) (*model.OdometerReading, error) {
	id := uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO odometer (`+odometerCols+`) VALUES (?, ?, ?, ?, ?)`,
		id, vehicleID, timestamp.UTC(), value, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert odometer reading: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+odometerCols+` FROM odometer WHERE id = ?`, id)
	return scanOdometer(row)
}

func (s *OdometerStore) Latest(vehicleID string) (*model.OdometerReading, error) {
	row := s.db.QueryRow(
		`SELECT `+odometerCols+` FROM odometer WHERE vehicle_id = ? ORDER BY timestamp DESC LIMIT 1`,
		vehicleID,
	)
	o, err := scanOdometer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest odometer reading: %w", err)
	}
	return o, nil
}

// Series returns readings within [from, to] ordered by timestamp. Zero
// bounds are treated as open.
func (s *OdometerStore) Series(vehicleID string, from, to time.Time) ([]model.OdometerReading, error) {
	query := `SELECT ` + odometerCols + ` FROM odometer WHERE vehicle_id = ?`
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
		return nil, fmt.Errorf("odometer series: %w", err)
	}
	defer rows.Close()

	var readings []model.OdometerReading
	for rows.Next() {
		o, err := scanOdometer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan odometer reading: %w", err)
		}
		readings = append(readings, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate odometer readings: %w", err)
	}
	return readings, nil
}

// Traveled returns max − min odometer value within the window, and the
// number of readings the window held.
func (s *OdometerStore) Traveled(vehicleID string, from, to time.Time) (float64, int, error) {
	query := `SELECT COALESCE(MAX(odometer_value) - MIN(odometer_value), 0), COUNT(*) FROM odometer WHERE vehicle_id = ?`
	args := []any{vehicleID}
	if !from.IsZero() {
		query += ` AND timestamp >= ?`
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		query += ` AND timestamp <= ?`
		args = append(args, to.UTC())
	}

	var distance float64
	var count int
	if err := s.db.QueryRow(query, args...).Scan(&distance, &count); err != nil {
		return 0, 0, fmt.Errorf("traveled distance: %w", err)
	}
	return distance, count, nil
}
