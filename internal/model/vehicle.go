package model

import "time"

type Vehicle struct {
	ID                 string    `json:"id"`
	Brand              string    `json:"brand"`
	Model              string    `json:"model"`
	Registration       string    `json:"registration"`
	RegistrationExpiry string    `json:"registration_expiry_date"` // YYYY-MM-DD
	UserID             string    `json:"user_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
