package model

import "time"

// OdometerReading is a point-in-time odometer value for a vehicle.
type OdometerReading struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"odometer_value"`
	CreatedAt time.Time `json:"created_at"`
}
