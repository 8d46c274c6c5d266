package model

import "time"

// Refuel records a refueling event together with the odometer reading
// taken at the pump.
type Refuel struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicle_id"`
	OdometerID string    `json:"odometer_id"`
	Timestamp  time.Time `json:"timestamp"`
	Quantity   float64   `json:"refuel_quantity"`
	CreatedAt  time.Time `json:"created_at"`
}
