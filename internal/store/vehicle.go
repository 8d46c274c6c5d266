package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ramhdi/vimana2/internal/model"
)

type VehicleStore struct {
	db *sql.DB
}

func NewVehicleStore(db *sql.DB) *VehicleStore {
	return &VehicleStore{db: db}
}

func scanVehicle(scanner interface{ Scan(...any) error }) (*model.Vehicle, error) {
	var v model.Vehicle
	err := scanner.Scan(&v.ID, &v.Brand, &v.Model, &v.Registration, &v.RegistrationExpiry, &v.UserID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

const vehicleCols = `id, brand, model, registration, registration_expiry_date, user_id, created_at, updated_at`

func (s *VehicleStore) Create(userID, brand, vmodel, registration, registrationExpiry string) (*model.Vehicle, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO vehicles (`+vehicleCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, brand, vmodel, registration, registrationExpiry, userID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}
	return s.GetByID(id)
}

func (s *VehicleStore) GetByID(id string) (*model.Vehicle, error) {
	row := s.db.QueryRow(`SELECT `+vehicleCols+` FROM vehicles WHERE id = ?`, id)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func (s *VehicleStore) ListByUserID(userID string) ([]model.Vehicle, error) {
	rows, err := s.db.Query(
		`SELECT `+vehicleCols+` FROM vehicles WHERE user_id = ? ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return vehicles, nil
}

// Update overwrites the mutable fields and bumps updated_at. Callers pass
// the merged value for each field (existing value when the client omitted it).
func (s *VehicleStore) Update(id, brand, vmodel, registration, registrationExpiry string) (*model.Vehicle, error) {
	_, err := s.db.Exec(
		`UPDATE vehicles SET brand = ?, model = ?, registration = ?, registration_expiry_date = ?, updated_at = ? WHERE id = ?`,
		brand, vmodel, registration, registrationExpiry, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return s.GetByID(id)
}

func (s *VehicleStore) Delete(id string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete vehicle: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
